package output

import (
	"fmt"
	"io"
	"time"

	"github.com/acdenisSK/release-maker/internal/changelog"
	"github.com/acdenisSK/release-maker/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ CommitListWriter = (*ConsoleCommitWriter)(nil)
	_ CommitListWriter = (*JSONCommitWriter)(nil)
	_ CommitListWriter = (*CSVCommitWriter)(nil)
	_ CommitListWriter = (*MarkdownCommitWriter)(nil)
	_ CommitListWriter = (*NDJSONCommitWriter)(nil)

	_ ReleaseWriter = (*JSONReleaseWriter)(nil)
	_ ReleaseWriter = (*MarkdownReleaseWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatNDJSON   OutputFormat = "ndjson"
)

// CommitListFormats are the formats accepted by NewCommitListWriter.
var CommitListFormats = []OutputFormat{FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatNDJSON}

// ReleaseFormats are the formats accepted by NewReleaseWriter.
var ReleaseFormats = []OutputFormat{FormatJSON, FormatMarkdown}

// ParseFormat checks that name is one of allowed.
func ParseFormat(name string, allowed []OutputFormat) (OutputFormat, error) {
	for _, f := range allowed {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (expected one of %v)", name, allowed)
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	// Stdout receives the report when OutputPath is empty. Defaults to os.Stdout.
	Stdout io.Writer
}

// CommitListReport is a selected range of a branch's history.
type CommitListReport struct {
	Repository  string
	Branch      string
	Start       string
	End         string
	GeneratedAt time.Time
	Commits     []git.Commit
}

// CommitListWriter writes commit list reports.
type CommitListWriter interface {
	Write(report *CommitListReport, options OutputOptions) error
}

// ReleaseWriter writes release documents.
type ReleaseWriter interface {
	Write(release changelog.Release, options OutputOptions) error
}

// NewCommitListWriter creates a commit list writer for the specified format.
func NewCommitListWriter(format OutputFormat) CommitListWriter {
	switch format {
	case FormatJSON:
		return &JSONCommitWriter{}
	case FormatCSV:
		return &CSVCommitWriter{}
	case FormatMarkdown:
		return &MarkdownCommitWriter{}
	case FormatNDJSON:
		return &NDJSONCommitWriter{}
	default:
		return &ConsoleCommitWriter{}
	}
}

// NewReleaseWriter creates a release writer for the specified format. The JSON
// document is the default, so its output can be edited and rendered later.
func NewReleaseWriter(format OutputFormat) ReleaseWriter {
	switch format {
	case FormatMarkdown:
		return &MarkdownReleaseWriter{}
	default:
		return &JSONReleaseWriter{}
	}
}
