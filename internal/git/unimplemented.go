package git

import "context"

// Unimplemented is an engine that cannot do anything. Every call fails with
// ErrNotImplemented.
type Unimplemented struct{}

// Name implements Engine.
func (Unimplemented) Name() string {
	return EngineNone
}

// Clone implements Engine.
func (Unimplemented) Clone(_ context.Context, url, _ string) (Repository, error) {
	return nil, wrapError("clone", url, ErrNotImplemented)
}

// Open implements Engine.
func (Unimplemented) Open(_ context.Context, path string) (Repository, error) {
	return nil, wrapError("open", path, ErrNotImplemented)
}

// unimplementedRepository is the handle type of Unimplemented. No value of it
// is ever handed out, but it still answers with an error rather than panicking.
type unimplementedRepository struct{}

func (unimplementedRepository) sealed() {}

func (unimplementedRepository) URL() (string, error) {
	return "", wrapError("url", "", ErrNotImplemented)
}

func (unimplementedRepository) Commits(_ context.Context, branch string) ([]Commit, error) {
	return nil, wrapError("commits", remoteBranch(branch), ErrNotImplemented)
}
