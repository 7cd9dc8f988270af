package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

const testRemoteURL = "https://example.com/org/repo"

var testEpoch = time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)

func signature(name string, offset int) *object.Signature {
	return &object.Signature{
		Name:  name,
		Email: name + "@example.com",
		When:  testEpoch.Add(time.Duration(offset) * time.Minute),
	}
}

// memoryRepo is an in-memory repository whose commits can be given arbitrary
// parents, for building merge graphs.
type memoryRepo struct {
	t    *testing.T
	repo *gogit.Repository
	wt   *gogit.Worktree
	n    int
}

func newMemoryRepo(t *testing.T) *memoryRepo {
	t.Helper()

	repo, err := gogit.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{testRemoteURL},
	}); err != nil {
		t.Fatalf("CreateRemote: %v", err)
	}

	return &memoryRepo{t: t, repo: repo, wt: wt}
}

func (m *memoryRepo) commit(message string, parents ...plumbing.Hash) plumbing.Hash {
	m.t.Helper()
	m.n++

	hash, err := m.wt.Commit(message, &gogit.CommitOptions{
		Author:            signature("author", m.n),
		Committer:         signature("committer", m.n),
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	if err != nil {
		m.t.Fatalf("Commit(%q): %v", message, err)
	}
	return hash
}

// rawCommit stores a commit object directly, bypassing any validation done by
// the worktree.
func (m *memoryRepo) rawCommit(c *object.Commit) plumbing.Hash {
	m.t.Helper()

	obj := m.repo.Storer.NewEncodedObject()
	if err := c.Encode(obj); err != nil {
		m.t.Fatalf("Encode: %v", err)
	}
	hash, err := m.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		m.t.Fatalf("SetEncodedObject: %v", err)
	}
	return hash
}

// track points refs/remotes/origin/<branch> at hash.
func (m *memoryRepo) track(branch string, hash plumbing.Hash) {
	m.t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", branch), hash)
	if err := m.repo.Storer.SetReference(ref); err != nil {
		m.t.Fatalf("SetReference: %v", err)
	}
}

func (m *memoryRepo) handle() *goGitRepository {
	return &goGitRepository{repo: m.repo, path: "memory"}
}

// newUpstream creates an on-disk repository with the given commit messages on
// master, oldest first, and returns its directory and the commit hashes.
func newUpstream(t *testing.T, messages ...string) (string, []plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	hashes := make([]plumbing.Hash, 0, len(messages))
	for i, message := range messages {
		if err := os.WriteFile(filepath.Join(dir, "CHANGELOG"), []byte(message+"\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := wt.Add("CHANGELOG"); err != nil {
			t.Fatalf("Add: %v", err)
		}
		hash, err := wt.Commit(message, &gogit.CommitOptions{
			Author:    signature("author", i),
			Committer: signature("committer", i),
		})
		if err != nil {
			t.Fatalf("Commit: %v", err)
		}
		hashes = append(hashes, hash)
	}

	return dir, hashes
}
