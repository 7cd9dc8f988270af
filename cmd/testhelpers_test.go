package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/acdenisSK/release-maker/config"
)

// runApp runs the CLI with the given standard input and arguments.
func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"release-maker"}, args...))
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a configuration file whose cache lives in a temporary
// directory and returns its path and the cache root.
func writeConfig(t *testing.T, modify func(*config.Config)) (string, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.CacheDir = filepath.Join(dir, "cache")
	if modify != nil {
		modify(cfg)
	}

	path := filepath.Join(dir, "config.json")
	if err := config.SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}
	return path, cfg.CacheDir
}

// newUpstream creates a repository on master with one commit per message and
// returns its path and the commit hashes, newest first.
func newUpstream(t *testing.T, messages ...string) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit() error: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error: %v", err)
	}

	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hashes := make([]string, 0, len(messages))
	for i, msg := range messages {
		name := fmt.Sprintf("file-%d.txt", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(msg), 0o644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
		sig := &object.Signature{Name: "ghost", Email: "ghost@example.com", When: when.Add(time.Duration(i) * time.Hour)}
		hash, err := wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
		if err != nil {
			t.Fatalf("Commit() error: %v", err)
		}
		hashes = append([]string{hash.String()}, hashes...)
	}
	return dir, hashes
}

// cloneUpstream clones upstream into a fresh directory, so that its history
// is reachable through refs/remotes/origin/master.
func cloneUpstream(t *testing.T, upstream string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "clone")
	if _, err := gogit.PlainClone(dir, false, &gogit.CloneOptions{URL: upstream}); err != nil {
		t.Fatalf("PlainClone() error: %v", err)
	}
	return dir
}

type commitListJSON struct {
	Repository   string `json:"repository"`
	TotalCommits int    `json:"totalCommits"`
	Commits      []struct {
		Hash    string `json:"hash"`
		Message string `json:"message"`
	} `json:"commits"`
}

func decodeCommitList(t *testing.T, data string) commitListJSON {
	t.Helper()

	var out commitListJSON
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, data)
	}
	return out
}
