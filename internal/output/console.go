package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleCommitWriter writes commit lists as a colored table.
type ConsoleCommitWriter struct{}

// Write outputs the commit list to the console.
func (w *ConsoleCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Commits")
	fmt.Fprintf(out, "Repository: %s\n", report.Repository)
	fmt.Fprintf(out, "Branch: %s\n", report.Branch)
	fmt.Fprintf(out, "Range: %s\n", rangeLabel(report.Start, report.End))
	fmt.Fprintf(out, "Total commits: %d\n\n", len(report.Commits))

	if len(commits) == 0 {
		fmt.Fprintln(out, "No commits in range.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tHash\tAuthor\tMessage")

	hash := color.New(color.FgYellow).SprintFunc()
	for i, c := range commits {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i+1,
			hash(c.ShortHash()),
			c.Author.Name,
			truncateMessage(c.Message, 60),
		)
	}

	return tw.Flush()
}
