package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// NDJSONCommitWriter writes commit lists as NDJSON, one object per line,
// for consumption by scripts.
type NDJSONCommitWriter struct{}

// NDJSONSummary is the first line of NDJSON output.
type NDJSONSummary struct {
	Type         string  `json:"type"`
	Repository   string  `json:"repository"`
	Branch       string  `json:"branch"`
	Start        *string `json:"start,omitempty"`
	End          *string `json:"end,omitempty"`
	TotalCommits int     `json:"totalCommits"`
}

// NDJSONCommitEntry is a single commit line.
type NDJSONCommitEntry struct {
	Type    string `json:"type"`
	Hash    string `json:"hash"`
	Author  string `json:"author"`
	Message string `json:"message"`
}

// Write outputs the commit list as NDJSON.
func (w *NDJSONCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := NDJSONSummary{
		Type:         "summary",
		Repository:   report.Repository,
		Branch:       report.Branch,
		Start:        optionalString(report.Start),
		End:          optionalString(report.End),
		TotalCommits: len(report.Commits),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, c := range commits {
		entry := NDJSONCommitEntry{
			Type:    "commit",
			Hash:    c.Hash,
			Author:  c.Author.Name,
			Message: c.Message,
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
