package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/acdenisSK/release-maker/config"
	"github.com/acdenisSK/release-maker/internal/cache"
	"github.com/acdenisSK/release-maker/internal/commitrange"
	"github.com/acdenisSK/release-maker/internal/git"
	"github.com/acdenisSK/release-maker/internal/output"
	"github.com/acdenisSK/release-maker/internal/resolver"
)

// CommandContext holds common state for command execution.
// It encapsulates resolving the reference argument and reading its history.
type CommandContext struct {
	Config     *config.Config
	Cache      *cache.Cache
	Engine     git.Engine
	Reference  string
	Repository git.Repository
	Commits    []git.Commit
	Log        logrus.FieldLogger
}

// newCache builds the cache described by cfg.
func newCache(cfg *config.Config) (*cache.Cache, error) {
	if cfg.CacheDir != "" {
		return cache.NewAt(cfg.CacheDir, cfg.ProgramName)
	}
	return cache.New(cfg.ProgramName)
}

// NewCommandContext creates a context from CLI flags and a loaded config.
// It performs repository resolution, history reading and range selection.
func NewCommandContext(c *cli.Context, cfg *config.Config) (*CommandContext, error) {
	repoCache, err := newCache(cfg)
	if err != nil {
		return nil, err
	}

	engine, err := git.NewEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	reference := c.Args().First()
	if reference == "" {
		reference = "."
	}
	log := logger(c).WithField("branch", cfg.Branch)

	repo, err := resolver.Resolve(c.Context, engine, repoCache, reference, resolver.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", reference, err)
	}

	history, err := repo.Commits(c.Context, cfg.Branch)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	log.WithField("commits", len(history)).Debug("read history")

	commits, err := selectRange(history, c.String("start"), c.String("end"), cfg.StrictRange)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:     cfg,
		Cache:      repoCache,
		Engine:     engine,
		Reference:  reference,
		Repository: repo,
		Commits:    commits,
		Log:        log,
	}, nil
}

func selectRange(history []git.Commit, start, end string, strict bool) ([]git.Commit, error) {
	if !strict {
		return commitrange.Select(history, start, end), nil
	}
	commits, err := commitrange.SelectStrict(history, start, end)
	if err != nil {
		return nil, fmt.Errorf("invalid commit range (use --lenient to ignore): %w", err)
	}
	return commits, nil
}

// URL returns the origin URL of the repository, falling back to the
// reference when the repository has none.
func (ctx *CommandContext) URL() string {
	url, err := ctx.Repository.URL()
	if err != nil {
		ctx.Log.WithError(err).Warn("repository has no origin URL")
		return ctx.Reference
	}
	return url
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context, format output.OutputFormat) output.OutputOptions {
	return output.OutputOptions{
		Format:     format,
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		Stdout:     c.App.Writer,
	}
}
