package git

import (
	"fmt"
	"strings"
)

// User is the identity recorded on a commit.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Commit is a commit read from a branch's history. Message only holds the
// summary line.
type Commit struct {
	Hash      string `json:"hash"`
	Author    User   `json:"author"`
	Committer User   `json:"committer"`
	Message   string `json:"message"`
}

// ShortHash returns the abbreviated seven character hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// summary returns the first non-blank line of a commit message.
func summary(message string) string {
	message = strings.TrimLeft(message, " \t\r\n")
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}

// newUser validates an identity taken from a commit object. Both fields are
// required.
func newUser(role, name, email string) (User, error) {
	if name == "" {
		return User{}, fmt.Errorf("%w: %s name is missing", ErrMalformedIdentity, role)
	}
	if email == "" {
		return User{}, fmt.Errorf("%w: %s email is missing", ErrMalformedIdentity, role)
	}
	return User{Name: name, Email: email}, nil
}

// remoteBranch is the remote-tracking reference walked for branch.
func remoteBranch(branch string) string {
	return "refs/remotes/" + originRemote + "/" + branch
}

const originRemote = "origin"
