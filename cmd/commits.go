package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/acdenisSK/release-maker/internal/output"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	flags := append(repositoryFlags(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ndjson) (default from config: console)",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of commits to show (0 for all)",
		},
	)

	return &cli.Command{
		Name:      "commits",
		Aliases:   []string{"log"},
		Usage:     "List the commits of a branch between two hashes",
		ArgsUsage: "[REFERENCE]",
		Description: "REFERENCE is a local path, the name of a cached repository or an http(s) URL.\n" +
			"URLs are cloned into the cache on first use. Commits are listed newest first.",
		Flags:  flags,
		Action: commitsAction,
	}
}

func commitsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	name := c.String("format")
	if name == "" {
		name = cfg.Format
	}
	format, err := output.ParseFormat(name, output.CommitListFormats)
	if err != nil {
		return err
	}

	ctx, err := NewCommandContext(c, cfg)
	if err != nil {
		return err
	}

	report := &output.CommitListReport{
		Repository:  ctx.URL(),
		Branch:      ctx.Config.Branch,
		Start:       c.String("start"),
		End:         c.String("end"),
		GeneratedAt: time.Now(),
		Commits:     ctx.Commits,
	}

	if err := writeCommitListReport(c, report, format); err != nil {
		return fmt.Errorf("failed to write commits: %w", err)
	}
	return nil
}
