package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/acdenisSK/release-maker/internal/changelog"
	"github.com/acdenisSK/release-maker/internal/output"
)

func writeCommitListReport(c *cli.Context, report *output.CommitListReport, format output.OutputFormat) error {
	opts := OutputOptions(c, format)
	writer := output.NewCommitListWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeRelease(c *cli.Context, release changelog.Release, format output.OutputFormat) error {
	opts := OutputOptions(c, format)
	writer := output.NewReleaseWriter(opts.Format)
	return writer.Write(release, opts)
}
