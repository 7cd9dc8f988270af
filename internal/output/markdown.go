package output

import (
	"fmt"

	"github.com/acdenisSK/release-maker/internal/changelog"
)

// MarkdownCommitWriter writes commit lists as a Markdown table.
type MarkdownCommitWriter struct{}

// Write outputs the commit list as Markdown.
func (w *MarkdownCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Commits")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.Repository)
	fmt.Fprintf(out, "**Branch:** %s\n\n", report.Branch)
	fmt.Fprintf(out, "**Range:** %s\n\n", rangeLabel(report.Start, report.End))
	fmt.Fprintf(out, "**Total Commits:** %d\n\n", len(report.Commits))

	fmt.Fprintln(out, "| # | Hash | Author | Message |")
	fmt.Fprintln(out, "|---|------|--------|---------|")
	for i, c := range commits {
		fmt.Fprintf(out, "| %d | `%s` | %s | %s |\n",
			i+1, c.ShortHash(), escapeMarkdown(c.Author.Name), escapeMarkdown(c.Message))
	}

	return nil
}

// MarkdownReleaseWriter writes the rendered release message.
type MarkdownReleaseWriter struct{}

// Write outputs the release message.
func (w *MarkdownReleaseWriter) Write(release changelog.Release, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return changelog.WriteMarkdown(out, release)
}
