package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/acdenisSK/release-maker/internal/changelog"
	"github.com/acdenisSK/release-maker/internal/git"
)

// JSONCommitWriter writes commit lists as JSON.
type JSONCommitWriter struct{}

// JSONCommitListReport is the JSON output structure for a commit list.
type JSONCommitListReport struct {
	Repository   string       `json:"repository"`
	Branch       string       `json:"branch"`
	Start        *string      `json:"start,omitempty"`
	End          *string      `json:"end,omitempty"`
	GeneratedAt  string       `json:"generatedAt"`
	TotalCommits int          `json:"totalCommits"`
	Commits      []git.Commit `json:"commits"`
}

// Write outputs the commit list as JSON.
func (w *JSONCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)
	if commits == nil {
		commits = []git.Commit{}
	}

	return writeJSON(JSONCommitListReport{
		Repository:   report.Repository,
		Branch:       report.Branch,
		Start:        optionalString(report.Start),
		End:          optionalString(report.End),
		GeneratedAt:  report.GeneratedAt.Format(reportDateTimeLayout),
		TotalCommits: len(report.Commits),
		Commits:      commits,
	}, options)
}

// JSONReleaseWriter writes the release document that the render command
// accepts.
type JSONReleaseWriter struct{}

// Write outputs the release as indented JSON.
func (w *JSONReleaseWriter) Write(release changelog.Release, options OutputOptions) error {
	return writeJSON(release, options)
}

func writeJSON(data any, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return encodeJSON(out, data)
}

func encodeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
