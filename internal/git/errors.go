package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrAlreadyExists      = errors.New("repository already exists")
	ErrRemoteNotFound     = errors.New("remote not found")
	ErrReferenceNotFound  = errors.New("reference not found")
	ErrObjectNotFound     = errors.New("object not found")
	ErrMalformedIdentity  = errors.New("malformed identity")
	ErrUnauthorized       = errors.New("authentication failed")

	// ErrNotImplemented is returned by every operation of the Unimplemented
	// engine and its handles.
	ErrNotImplemented = errors.New("not implemented")

	// ErrEngineUnavailable is returned when the engine's backing tool is
	// missing, such as Exec without a git executable.
	ErrEngineUnavailable = errors.New("git engine unavailable")
)

// EngineError describes a failed engine operation.
type EngineError struct {
	Op     string // clone, open, url, commits
	Target string // path, URL or reference the operation was working on
	Err    error
}

func (e *EngineError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// wrapError builds an EngineError, classifying err onto the package sentinels.
// If err is nil, returns nil.
func wrapError(op, target string, err error) error {
	if err == nil {
		return nil
	}
	return &EngineError{Op: op, Target: target, Err: classifyError(err)}
}

// classifyError maps go-git errors onto the package sentinels while keeping the
// original error in the chain. Errors that are already classified, or unknown,
// are returned unchanged.
func classifyError(err error) error {
	var sentinel error

	switch {
	case errors.Is(err, gogit.ErrRepositoryNotExists),
		errors.Is(err, transport.ErrRepositoryNotFound):
		sentinel = ErrRepositoryNotFound
	case errors.Is(err, gogit.ErrRepositoryAlreadyExists):
		sentinel = ErrAlreadyExists
	case errors.Is(err, gogit.ErrRemoteNotFound):
		sentinel = ErrRemoteNotFound
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		sentinel = ErrReferenceNotFound
	case errors.Is(err, plumbing.ErrObjectNotFound):
		sentinel = ErrObjectNotFound
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed):
		sentinel = ErrUnauthorized
	default:
		return err
	}

	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
