package git

import "context"

// Engine clones and opens repositories.
type Engine interface {
	// Name identifies the engine in configuration and logs.
	Name() string

	// Clone clones the repository at url into destination and opens it.
	Clone(ctx context.Context, url, destination string) (Repository, error)

	// Open opens the existing repository at path.
	Open(ctx context.Context, path string) (Repository, error)
}

// Repository is an open repository handle produced by an Engine.
//
// It cannot be implemented outside of this package.
type Repository interface {
	// URL returns the URL of the "origin" remote.
	URL() (string, error)

	// Commits walks refs/remotes/origin/<branch> in topological order, newest
	// first. Either the whole history is returned or an error.
	Commits(ctx context.Context, branch string) ([]Commit, error)

	sealed()
}

// Compile-time interface conformance checks.
var (
	_ Engine = GoGit{}
	_ Engine = (*Exec)(nil)
	_ Engine = Unimplemented{}

	_ Repository = (*goGitRepository)(nil)
	_ Repository = (*execRepository)(nil)
	_ Repository = unimplementedRepository{}
)
