package cache

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNoCacheRoot is returned by New when the host has no usable per-user
	// cache location.
	ErrNoCacheRoot = errors.New("system did not provide a user cache directory")

	// ErrNoRepositoryName is returned when a repository name cannot be taken
	// from a URL.
	ErrNoRepositoryName = errors.New("could not find the repository name")

	// ErrInvalidProgramName is returned for program names that are not a single
	// path element below the cache root.
	ErrInvalidProgramName = errors.New("program name must be a single directory name")
)

// readBatch is the number of directory entries fetched per read while
// iterating over Repositories.
const readBatch = 16

// Cache keeps track of repositories stored in the program's directory inside
// the user cache directory. A Cache is immutable once created.
type Cache struct {
	path        string
	programName string
}

// New creates a Cache for programName rooted at the user cache directory given
// by the system (XDG base directories on Linux, Known Folders on Windows,
// ~/Library/Caches on macOS).
func New(programName string) (*Cache, error) {
	if err := ValidateProgramName(programName); err != nil {
		return nil, err
	}
	root, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCacheRoot, err)
	}
	return NewAt(root, programName)
}

// NewAt creates a Cache for programName rooted at an explicit directory.
func NewAt(root, programName string) (*Cache, error) {
	if err := ValidateProgramName(programName); err != nil {
		return nil, err
	}
	return &Cache{path: root, programName: programName}, nil
}

// ValidateProgramName reports names whose program directory would not be a
// direct child of the cache root.
func ValidateProgramName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
	case strings.ContainsAny(name, `/\`), filepath.Base(name) != name, filepath.VolumeName(name) != "":
	default:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidProgramName, name)
}

// Path returns the user cache directory.
func (c *Cache) Path() string {
	return c.path
}

// ProgramPath returns the program's directory inside the user cache directory.
func (c *Cache) ProgramPath() string {
	return filepath.Join(c.path, c.programName)
}

// ProgramName returns the name of the program this Cache belongs to.
func (c *Cache) ProgramName() string {
	return c.programName
}

// RepositoryPath returns the path of a repository called name. The path is not
// checked for existence.
func (c *Cache) RepositoryPath(name string) string {
	return filepath.Join(c.ProgramPath(), name)
}

// RepositoryPathURL returns the cache path of a remote repository. The name is
// the last "/"-separated segment of repoURL, so a URL ending in "/" has none.
func (c *Cache) RepositoryPathURL(repoURL string) (string, error) {
	name := repoURL[strings.LastIndexByte(repoURL, '/')+1:]
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrNoRepositoryName, repoURL)
	}
	return c.RepositoryPath(name), nil
}

// Repositories returns the paths of all entries in the program directory.
//
// The directory is opened immediately, so an unreadable directory is reported
// here. Entries are read while the sequence is consumed, which means changes
// made to the directory during iteration may or may not be observed.
//
// The sequence can be ranged over once. The directory handle is released when
// the iteration ends, so a sequence that is never ranged over keeps it open
// until it is garbage collected. A read failure in the middle of the listing
// ends the sequence early without reporting an error.
func (c *Cache) Repositories() (iter.Seq[string], error) {
	programPath := c.ProgramPath()

	dir, err := os.Open(programPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	return func(yield func(string) bool) {
		defer dir.Close()

		for {
			entries, err := dir.ReadDir(readBatch)
			for _, entry := range entries {
				if !yield(filepath.Join(programPath, entry.Name())) {
					return
				}
			}
			// io.EOF ends the listing, and so does any read failure.
			if err != nil {
				return
			}
		}
	}, nil
}

// Match is like Repositories but only yields entries whose base name matches
// the doublestar pattern.
func (c *Cache) Match(pattern string) (iter.Seq[string], error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	repos, err := c.Repositories()
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		for path := range repos {
			if ok, _ := doublestar.Match(pattern, filepath.Base(path)); !ok {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}, nil
}

// RepositoryExists reports whether a repository called name is present.
func (c *Cache) RepositoryExists(name string) bool {
	_, err := os.Stat(c.RepositoryPath(name))
	return err == nil
}

// Clear removes the program directory and every repository inside it.
//
// Clearing a cache whose directory does not exist fails with an error matching
// fs.ErrNotExist, so calling Clear twice in a row fails the second time.
func (c *Cache) Clear() error {
	programPath := c.ProgramPath()

	if _, err := os.Lstat(programPath); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if err := os.RemoveAll(programPath); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
