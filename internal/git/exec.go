package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Exec provides git capabilities by running the git executable.
type Exec struct {
	// Binary is the executable to run. Empty means "git" looked up on PATH.
	Binary string
}

// Name implements Engine.
func (e *Exec) Name() string {
	return EngineExec
}

func (e *Exec) binary() string {
	if e.Binary == "" {
		return "git"
	}
	return e.Binary
}

// available reports ErrEngineUnavailable when the executable cannot be found.
func (e *Exec) available() error {
	if _, err := exec.LookPath(e.binary()); err != nil {
		return fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}
	return nil
}

// Clone implements Engine.
func (e *Exec) Clone(ctx context.Context, url, destination string) (Repository, error) {
	if err := e.available(); err != nil {
		return nil, wrapError("clone", url, err)
	}

	if _, err := e.output(ctx, "clone", "--quiet", "--", url, destination); err != nil {
		return nil, wrapError("clone", url, err)
	}
	return e.Open(ctx, destination)
}

// Open implements Engine. Like GoGit, only the root of a working tree (a
// linked worktree included) or a bare repository directory is accepted.
func (e *Exec) Open(ctx context.Context, path string) (Repository, error) {
	if err := e.available(); err != nil {
		return nil, wrapError("open", path, err)
	}

	root, err := canonicalPath(path)
	if err != nil {
		return nil, wrapError("open", path, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err))
	}

	out, err := e.output(ctx, "-C", root, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, wrapError("open", path, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err))
	}

	gitDir, err := canonicalPath(strings.TrimSpace(out))
	if err != nil {
		return nil, wrapError("open", path, err)
	}
	if gitDir == root {
		return &execRepository{engine: e, path: root}, nil
	}

	// A linked worktree keeps its git directory under <common>/worktrees, so
	// compare the top of the working tree instead of the git directory.
	out, err = e.output(ctx, "-C", root, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, wrapError("open", path, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err))
	}
	top, err := canonicalPath(strings.TrimSpace(out))
	if err != nil {
		return nil, wrapError("open", path, err)
	}
	if top != root {
		return nil, wrapError("open", path, fmt.Errorf("%w: %s is inside %s", ErrRepositoryNotFound, path, top))
	}

	return &execRepository{engine: e, path: root}, nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// output runs git and returns its stdout. Failures carry the command line and
// whatever git printed on stderr.
func (e *Exec) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, e.binary(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// exitCode returns the exit status of a failed git command, or -1.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

type execRepository struct {
	engine *Exec
	path   string
}

func (*execRepository) sealed() {}

func (r *execRepository) URL() (string, error) {
	out, err := r.engine.output(context.Background(), "-C", r.path, "config", "--get", "remote."+originRemote+".url")
	if err != nil {
		// git config exits with 1 when the key is not set.
		if exitCode(err) == 1 {
			err = fmt.Errorf("%w: %q", ErrRemoteNotFound, originRemote)
		}
		return "", wrapError("url", r.path, err)
	}

	url := strings.TrimSpace(out)
	if url == "" {
		return "", wrapError("url", r.path, fmt.Errorf("%w: %q has no URL", ErrRemoteNotFound, originRemote))
	}
	return url, nil
}

// Each record starts with 0x1e and holds NUL-separated fields. The raw body
// comes last so that it may span several lines.
const execLogFormat = "%x1e%H%x00%an%x00%ae%x00%cn%x00%ce%x00%B"

func (r *execRepository) Commits(ctx context.Context, branch string) ([]Commit, error) {
	ref := remoteBranch(branch)

	out, err := r.engine.output(ctx, "-C", r.path, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		if exitCode(err) == 1 {
			err = fmt.Errorf("%w: %s", ErrReferenceNotFound, ref)
		}
		return nil, wrapError("commits", ref, err)
	}
	tip := strings.TrimSpace(out)

	out, err = r.engine.output(ctx, "-C", r.path, "log",
		"--topo-order",
		"--no-color",
		"--pretty=format:"+execLogFormat,
		tip,
	)
	if err != nil {
		return nil, wrapError("commits", ref, err)
	}

	commits, err := parseLog(out)
	if err != nil {
		return nil, wrapError("commits", ref, err)
	}
	return commits, nil
}

// parseLog parses the output of git log run with execLogFormat.
func parseLog(out string) ([]Commit, error) {
	records := strings.Split(out, "\x1e")
	commits := make([]Commit, 0, len(records))

	for _, rec := range records {
		if strings.TrimSpace(rec) == "" {
			continue
		}

		fields := strings.SplitN(rec, "\x00", 6)
		if len(fields) < 6 {
			return nil, fmt.Errorf("unexpected git log record format")
		}

		hash := fields[0]
		author, err := newUser("author", fields[1], fields[2])
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", hash, err)
		}
		committer, err := newUser("committer", fields[3], fields[4])
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", hash, err)
		}

		commits = append(commits, Commit{
			Hash:      hash,
			Author:    author,
			Committer: committer,
			Message:   summary(fields[5]),
		})
	}

	return commits, nil
}
