package output

import (
	"encoding/csv"
)

// CSVCommitWriter writes commit lists as CSV.
type CSVCommitWriter struct{}

// Write outputs the commit list as CSV.
func (w *CSVCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	writer := csv.NewWriter(out)

	headers := []string{"Hash", "AuthorName", "AuthorEmail", "CommitterName", "CommitterEmail", "Message"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, c := range commits {
		row := []string{
			c.Hash,
			c.Author.Name,
			c.Author.Email,
			c.Committer.Name,
			c.Committer.Email,
			c.Message,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
