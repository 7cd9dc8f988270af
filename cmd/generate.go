package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/acdenisSK/release-maker/internal/changelog"
	"github.com/acdenisSK/release-maker/internal/classify"
	"github.com/acdenisSK/release-maker/internal/output"
)

// GenerateCmd returns the generate command.
func GenerateCmd() *cli.Command {
	flags := append(repositoryFlags(),
		&cli.StringFlag{
			Name:  "category",
			Usage: "Category given to every generated change (default from config: any)",
		},
		&cli.BoolFlag{
			Name:  "classify",
			Usage: "Sort changes into sections by matching their messages against the configured patterns",
		},
		&cli.StringFlag{
			Name:  "header",
			Usage: "Message placed at the top of the release",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (json, markdown)",
			Value:   string(output.FormatJSON),
		},
	)

	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a release document from a commit range",
		ArgsUsage: "[REFERENCE]",
		Description: "The JSON document lists every commit as an added change. Edit it and\n" +
			"pass it to the render command to produce the release message.",
		Flags:  flags,
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("format"), output.ReleaseFormats)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, err := NewCommandContext(c, cfg)
	if err != nil {
		return err
	}

	category := c.String("category")
	if category == "" {
		category = ctx.Config.Category
	}

	release := changelog.FromCommits(ctx.URL(), category, ctx.Commits)
	release.Header = c.String("header")

	if c.Bool("classify") {
		classifier, err := classify.New(ctx.Config.Sections)
		if err != nil {
			return err
		}
		release = classifier.Apply(release)
	}
	ctx.Log.WithField("changes", len(release.Added)).Debug("generated release")

	if err := writeRelease(c, release, format); err != nil {
		return fmt.Errorf("failed to write release: %w", err)
	}
	return nil
}
