package output

import (
	"io"
	"os"
	"strings"
	"time"
)

const reportDateTimeLayout = time.RFC3339

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// rangeLabel describes the boundaries a commit list was selected with.
func rangeLabel(start, end string) string {
	if start == "" && end == "" {
		return "full history"
	}
	if start == "" {
		start = "first"
	}
	if end == "" {
		end = "last"
	}
	return start + ".." + end
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// openOutputWriter returns the destination of a report. The returned file is
// nil when writing to the options' stdout.
func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.OutputPath == "" {
		if options.Stdout != nil {
			return options.Stdout, nil, nil
		}
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

var markdownEscaper = strings.NewReplacer(
	"|", "\\|",
	"*", "\\*",
	"_", "\\_",
	"`", "\\`",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
