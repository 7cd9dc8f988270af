package changelog

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

const thanksLine = "Thanks to the following for their contributions:"

// Authors returns the unique authors of the release, sorted by name without
// regard to case.
func (r Release) Authors() []Author {
	seen := make(map[Author]struct{})
	var authors []Author
	for _, c := range r.changes() {
		for _, a := range c.Authors {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			authors = append(authors, a)
		}
	}
	slices.SortStableFunc(authors, func(a, b Author) int {
		if n := strings.Compare(strings.ToLower(string(a)), strings.ToLower(string(b))); n != 0 {
			return n
		}
		return strings.Compare(string(a), string(b))
	})
	return authors
}

// Commits returns every commit referenced by the release in document order.
func (r Release) Commits() []CommitRef {
	var commits []CommitRef
	for _, c := range r.changes() {
		commits = append(commits, c.Commits...)
	}
	return commits
}

// WriteMarkdown renders the release message. Nothing is written when the
// release fails validation.
func WriteMarkdown(w io.Writer, r Release) error {
	if err := r.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	if r.Header != "" {
		fmt.Fprintf(bw, "%s\n\n", r.Header)
	}

	fmt.Fprintf(bw, "%s\n\n", thanksLine)
	authors := r.Authors()
	for _, a := range authors {
		fmt.Fprintf(bw, "- %s\n", a)
	}
	fmt.Fprintln(bw)

	writeSection(bw, "### Added", r.Added)
	writeSection(bw, "### Changed", r.Changed)
	writeSection(bw, "### Fixed", r.Fixed)
	writeSection(bw, "### Removed", r.Removed)

	for _, a := range authors {
		fmt.Fprintf(bw, "%s: https://github.com/%s\n", a, string(a))
	}
	fmt.Fprintln(bw)

	repoURL := strings.TrimSuffix(r.RepoURL, "/")
	for _, c := range r.Commits() {
		fmt.Fprintf(bw, "%s: %s/commit/%s\n", c, repoURL, string(c))
	}

	return bw.Flush()
}

func writeSection(w io.Writer, header string, changes []Change) {
	if len(changes) == 0 {
		return
	}

	fmt.Fprintf(w, "%s\n\n", header)
	for _, c := range changes {
		fmt.Fprintf(w, "- [%s] %s (%s) %s\n", c.Category, c.Name, join(c.Authors), join(c.Commits))
	}
	fmt.Fprintln(w)
}

func join[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}
