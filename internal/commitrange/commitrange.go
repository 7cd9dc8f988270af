// Package commitrange narrows a commit history to the inclusive range between
// two commit hashes.
//
// Commits are expected in the order produced by git.Repository.Commits, newest
// first, so the start boundary is the newest commit kept and the end boundary
// the oldest.
package commitrange

import (
	"errors"
	"fmt"

	"github.com/acdenisSK/release-maker/internal/git"
)

var (
	// ErrBoundaryNotFound is returned by SelectStrict when a supplied hash is
	// not part of the history.
	ErrBoundaryNotFound = errors.New("commit not found in history")

	// ErrInvertedRange is returned by SelectStrict when the end boundary comes
	// before the start boundary.
	ErrInvertedRange = errors.New("end commit precedes start commit")
)

// FindIndex returns the position of the commit whose hash equals hash. An empty
// hash is never found.
func FindIndex(commits []git.Commit, hash string) (int, bool) {
	if hash == "" {
		return 0, false
	}
	for i, c := range commits {
		if c.Hash == hash {
			return i, true
		}
	}
	return 0, false
}

// bounds returns the effective start and end indices. Missing boundaries fall
// back to the first and last commit.
func bounds(commits []git.Commit, start, end string) (int, int) {
	first, ok := FindIndex(commits, start)
	if !ok {
		first = 0
	}
	last, ok := FindIndex(commits, end)
	if !ok {
		last = max(len(commits)-1, 0)
	}
	return first, last
}

// Select returns commits[start..end], both ends included.
//
// A boundary that is empty or does not match any commit is treated as absent:
// the range then starts at the first commit or ends at the last one. Select
// returns an empty slice for an empty history or an inverted range.
func Select(commits []git.Commit, start, end string) []git.Commit {
	if len(commits) == 0 {
		return []git.Commit{}
	}

	first, last := bounds(commits, start, end)
	if first > last {
		return []git.Commit{}
	}
	return commits[first : last+1]
}

// SelectStrict is like Select but reports boundaries that were supplied and
// not found, and ranges whose end precedes their start.
func SelectStrict(commits []git.Commit, start, end string) ([]git.Commit, error) {
	for _, boundary := range []struct{ name, hash string }{{"start", start}, {"end", end}} {
		if boundary.hash == "" {
			continue
		}
		if _, ok := FindIndex(commits, boundary.hash); !ok {
			return nil, fmt.Errorf("%s %s: %w", boundary.name, boundary.hash, ErrBoundaryNotFound)
		}
	}

	if len(commits) == 0 {
		return []git.Commit{}, nil
	}

	first, last := bounds(commits, start, end)
	if first > last {
		return nil, fmt.Errorf("start %s, end %s: %w", start, end, ErrInvertedRange)
	}
	return commits[first : last+1], nil
}
