package git

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit provides git capabilities using the embedded go-git library.
type GoGit struct{}

// Name implements Engine.
func (GoGit) Name() string {
	return EngineGoGit
}

// Clone implements Engine. A full, non-bare clone of every branch is made so
// that the remote-tracking references exist afterwards.
func (GoGit) Clone(ctx context.Context, url, destination string) (Repository, error) {
	repo, err := gogit.PlainCloneContext(ctx, destination, false, &gogit.CloneOptions{
		URL: url,
	})
	if err != nil {
		return nil, wrapError("clone", url, err)
	}
	return &goGitRepository{repo: repo, path: destination}, nil
}

// Open implements Engine. The path must be the repository root; parent
// directories are not searched.
func (GoGit) Open(_ context.Context, path string) (Repository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, wrapError("open", path, err)
	}
	return &goGitRepository{repo: repo, path: path}, nil
}

type goGitRepository struct {
	repo *gogit.Repository
	path string
}

func (*goGitRepository) sealed() {}

func (r *goGitRepository) URL() (string, error) {
	remote, err := r.repo.Remote(originRemote)
	if err != nil {
		return "", wrapError("url", r.path, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 || urls[0] == "" {
		return "", wrapError("url", r.path, fmt.Errorf("%w: %q has no URL", ErrRemoteNotFound, originRemote))
	}
	return urls[0], nil
}

func (r *goGitRepository) Commits(ctx context.Context, branch string) ([]Commit, error) {
	refName := plumbing.ReferenceName(remoteBranch(branch))

	ref, err := r.repo.Reference(refName, true)
	if err != nil {
		return nil, wrapError("commits", refName.String(), err)
	}

	ordered, err := topoOrder(ctx, r.repo, ref.Hash())
	if err != nil {
		return nil, wrapError("commits", refName.String(), err)
	}

	commits := make([]Commit, 0, len(ordered))
	for _, c := range ordered {
		commit, err := toCommit(c)
		if err != nil {
			return nil, wrapError("commits", refName.String(), err)
		}
		commits = append(commits, commit)
	}

	return commits, nil
}

func toCommit(c *object.Commit) (Commit, error) {
	author, err := newUser("author", c.Author.Name, c.Author.Email)
	if err != nil {
		return Commit{}, fmt.Errorf("commit %s: %w", c.Hash, err)
	}
	committer, err := newUser("committer", c.Committer.Name, c.Committer.Email)
	if err != nil {
		return Commit{}, fmt.Errorf("commit %s: %w", c.Hash, err)
	}

	return Commit{
		Hash:      c.Hash.String(),
		Author:    author,
		Committer: committer,
		Message:   summary(c.Message),
	}, nil
}

// topoOrder returns every commit reachable from tip so that no commit appears
// before any of its descendants. Among the parents of a commit, the first
// parent's line is emitted first, which keeps linear history in log order.
func topoOrder(ctx context.Context, repo *gogit.Repository, tip plumbing.Hash) ([]*object.Commit, error) {
	// Load the reachable graph and count, for every commit, how many of its
	// children are part of it.
	commits := make(map[plumbing.Hash]*object.Commit)
	pending := make(map[plumbing.Hash]int)
	queue := []plumbing.Hash{tip}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hash := queue[0]
		queue = queue[1:]
		if _, seen := commits[hash]; seen {
			continue
		}

		c, err := repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", hash, err)
		}
		commits[hash] = c

		for _, parent := range c.ParentHashes {
			pending[parent]++
			if _, seen := commits[parent]; !seen {
				queue = append(queue, parent)
			}
		}
	}

	ordered := make([]*object.Commit, 0, len(commits))
	stack := []*object.Commit{commits[tip]}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ordered = append(ordered, c)

		// Push in reverse so the first parent is popped first.
		for i := len(c.ParentHashes) - 1; i >= 0; i-- {
			parent := c.ParentHashes[i]
			pending[parent]--
			if pending[parent] == 0 {
				stack = append(stack, commits[parent])
			}
		}
	}

	return ordered, nil
}
