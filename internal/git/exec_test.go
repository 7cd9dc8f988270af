package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireGitBinary(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
}

func logRecord(fields ...string) string {
	return "\x1e" + strings.Join(fields, "\x00")
}

func TestParseLog(t *testing.T) {
	out := logRecord("aaaaaaa1", "Ann", "ann@example.com", "Cid", "cid@example.com", "Second\n\nBody text\n") + "\n" +
		logRecord("bbbbbbb2", "Bob", "bob@example.com", "Bob", "bob@example.com", "First")

	commits, err := parseLog(out)
	if err != nil {
		t.Fatalf("parseLog: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("commits = %d, want 2", len(commits))
	}

	want := Commit{
		Hash:      "aaaaaaa1",
		Author:    User{Name: "Ann", Email: "ann@example.com"},
		Committer: User{Name: "Cid", Email: "cid@example.com"},
		Message:   "Second",
	}
	if commits[0] != want {
		t.Fatalf("commits[0] = %+v, want %+v", commits[0], want)
	}
	if commits[1].Hash != "bbbbbbb2" || commits[1].Message != "First" {
		t.Fatalf("commits[1] = %+v", commits[1])
	}
}

func TestParseLog_Empty(t *testing.T) {
	commits, err := parseLog("")
	if err != nil {
		t.Fatalf("parseLog: %v", err)
	}
	if len(commits) != 0 {
		t.Fatalf("commits = %d, want 0", len(commits))
	}
}

func TestParseLog_Malformed(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want error
	}{
		{name: "MissingFields", out: logRecord("aaaaaaa", "Ann")},
		{name: "MissingEmail", out: logRecord("aaaaaaa", "Ann", "", "Ann", "ann@example.com", "msg"), want: ErrMalformedIdentity},
		{name: "MissingCommitter", out: logRecord("aaaaaaa", "Ann", "ann@example.com", "", "", "msg"), want: ErrMalformedIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLog(tt.out)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestExec_UnavailableBinary(t *testing.T) {
	engine := &Exec{Binary: "release-maker-no-such-git"}

	if _, err := engine.Open(context.Background(), t.TempDir()); !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("Open: expected ErrEngineUnavailable, got %v", err)
	}
	if _, err := engine.Clone(context.Background(), testRemoteURL, t.TempDir()); !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("Clone: expected ErrEngineUnavailable, got %v", err)
	}
}

func TestExec_MatchesGoGit(t *testing.T) {
	requireGitBinary(t)
	ctx := context.Background()

	upstream, _ := newUpstream(t, "one", "two", "three")
	dest := filepath.Join(t.TempDir(), "repo")

	engine := &Exec{}
	repo, err := engine.Clone(ctx, upstream, dest)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}

	url, err := repo.URL()
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != upstream {
		t.Fatalf("URL() = %q, want %q", url, upstream)
	}

	got, err := repo.Commits(ctx, "master")
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}

	reference, err := GoGit{}.Open(ctx, dest)
	if err != nil {
		t.Fatalf("GoGit Open: %v", err)
	}
	want, err := reference.Commits(ctx, "master")
	if err != nil {
		t.Fatalf("GoGit Commits: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("commits = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("commits[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if _, err := repo.Commits(ctx, "missing"); !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("expected ErrReferenceNotFound, got %v", err)
	}
}

func TestExec_OpenRejectsNonRepositories(t *testing.T) {
	requireGitBinary(t)
	ctx := context.Background()

	upstream, _ := newUpstream(t, "one")
	sub := filepath.Join(upstream, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	tests := map[string]string{
		"Missing":      filepath.Join(t.TempDir(), "missing"),
		"Subdirectory": sub,
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := (&Exec{}).Open(ctx, path); !errors.Is(err, ErrRepositoryNotFound) {
				t.Fatalf("expected ErrRepositoryNotFound, got %v", err)
			}
		})
	}

	repo, err := (&Exec{}).Open(ctx, upstream)
	if err != nil {
		t.Fatalf("Open(upstream): %v", err)
	}
	if _, err := repo.URL(); !errors.Is(err, ErrRemoteNotFound) {
		t.Fatalf("expected ErrRemoteNotFound, got %v", err)
	}
}

func TestExec_OpenLinkedWorktree(t *testing.T) {
	requireGitBinary(t)
	ctx := context.Background()

	upstream, _ := newUpstream(t, "one")
	worktree := filepath.Join(t.TempDir(), "linked")
	if _, err := (&Exec{}).output(ctx, "-C", upstream, "worktree", "add", "-b", "linked", worktree); err != nil {
		t.Fatalf("worktree add: %v", err)
	}

	if _, err := (&Exec{}).Open(ctx, worktree); err != nil {
		t.Fatalf("Open(linked worktree): %v", err)
	}

	sub := filepath.Join(worktree, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if _, err := (&Exec{}).Open(ctx, sub); !errors.Is(err, ErrRepositoryNotFound) {
		t.Fatalf("expected ErrRepositoryNotFound for a worktree subdirectory, got %v", err)
	}
}
