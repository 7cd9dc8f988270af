// Package changelog models a GitHub release message: a JSON document listing
// the changes of a release, and the markdown it renders to.
package changelog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/acdenisSK/release-maker/internal/git"
)

// MinCommitLength is the shortest hash accepted as a commit reference.
const MinCommitLength = 7

// DefaultCategory is used for changes generated from a commit history.
const DefaultCategory = "any"

var (
	ErrShortCommit    = errors.New("commit hashes must not be shorter than 7 characters")
	ErrEmptyCategory  = errors.New("change category cannot be empty")
	ErrNoRepoURL      = errors.New("release is missing repo_url")
	ErrExpectedOne    = errors.New("expected one string or more")
	ErrMalformedEntry = errors.New("change must be [category, name, authors, commits]")
)

// Author is a GitHub login.
type Author string

// String renders the reference-style label of a mention, e.g. [@ghost].
func (a Author) String() string {
	return "[@" + string(a) + "]"
}

// CommitRef is a commit hash of at least MinCommitLength characters.
type CommitRef string

// NewCommitRef validates hash.
func NewCommitRef(hash string) (CommitRef, error) {
	if len(hash) < MinCommitLength {
		return "", fmt.Errorf("%w: %q", ErrShortCommit, hash)
	}
	return CommitRef(hash), nil
}

// String renders the reference-style label of the commit using its first
// seven characters, e.g. [c:820d50e].
func (c CommitRef) String() string {
	short := string(c)
	if len(short) > MinCommitLength {
		short = short[:MinCommitLength]
	}
	return "[c:" + short + "]"
}

// Change is a single entry of a release. It is encoded as the JSON array
// [category, name, authors, commits], where authors and commits are either a
// string or a non-empty array of strings.
type Change struct {
	Category string
	Name     string
	Authors  []Author
	Commits  []CommitRef
}

// Release is the input document of a release message.
type Release struct {
	Header  string   `json:"header"`
	RepoURL string   `json:"repo_url"`
	Added   []Change `json:"added"`
	Changed []Change `json:"changed"`
	Fixed   []Change `json:"fixed"`
	Removed []Change `json:"removed"`
}

// Parse decodes a release document and validates it.
func Parse(data []byte) (Release, error) {
	var r Release
	if err := json.Unmarshal(data, &r); err != nil {
		return Release{}, fmt.Errorf("failed to decode release: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Release{}, err
	}
	return r, nil
}

// Validate reports a missing repository URL or an uncategorised change.
func (r Release) Validate() error {
	if r.RepoURL == "" {
		return ErrNoRepoURL
	}
	for _, c := range r.changes() {
		if c.Category == "" {
			return fmt.Errorf("%w: %q", ErrEmptyCategory, c.Name)
		}
	}
	return nil
}

func (r Release) changes() []Change {
	all := make([]Change, 0, len(r.Added)+len(r.Changed)+len(r.Fixed)+len(r.Removed))
	all = append(all, r.Added...)
	all = append(all, r.Changed...)
	all = append(all, r.Fixed...)
	return append(all, r.Removed...)
}

// FromCommits builds a release whose added list holds one change per commit,
// credited to the commit author.
func FromCommits(repoURL, category string, commits []git.Commit) Release {
	if category == "" {
		category = DefaultCategory
	}
	added := make([]Change, len(commits))
	for i, c := range commits {
		added[i] = Change{
			Category: category,
			Name:     c.Message,
			Authors:  []Author{Author(c.Author.Name)},
			Commits:  []CommitRef{CommitRef(c.Hash)},
		}
	}
	return Release{
		RepoURL: repoURL,
		Added:   added,
		Changed: []Change{},
		Fixed:   []Change{},
		Removed: []Change{},
	}
}

// MarshalJSON encodes a change as a four element array. Single authors and
// commits are written as plain strings.
func (c Change) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Category, c.Name, oneOrMore(c.Authors), oneOrMore(c.Commits)})
}

func oneOrMore[T ~string](items []T) any {
	if len(items) == 1 {
		return string(items[0])
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = string(item)
	}
	return out
}

// UnmarshalJSON decodes the four element array form.
func (c *Change) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}
	if len(fields) != 4 {
		return fmt.Errorf("%w: got %d elements", ErrMalformedEntry, len(fields))
	}

	var change Change
	if err := json.Unmarshal(fields[0], &change.Category); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if err := json.Unmarshal(fields[1], &change.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}

	authors, err := decodeOneOrMore(fields[2])
	if err != nil {
		return fmt.Errorf("authors: %w", err)
	}
	for _, a := range authors {
		change.Authors = append(change.Authors, Author(a))
	}

	commits, err := decodeOneOrMore(fields[3])
	if err != nil {
		return fmt.Errorf("commits: %w", err)
	}
	for _, h := range commits {
		ref, err := NewCommitRef(h)
		if err != nil {
			return fmt.Errorf("commits: %w", err)
		}
		change.Commits = append(change.Commits, ref)
	}

	*c = change
	return nil
}

func decodeOneOrMore(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return []string{s}, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExpectedOne, err)
	}
	if len(list) == 0 {
		return nil, ErrExpectedOne
	}
	return list, nil
}
