// Package classify sorts the changes of a generated release into sections by
// matching commit messages against regular expressions.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/acdenisSK/release-maker/internal/changelog"
)

// Section is a list of a release a change can be placed in.
type Section string

const (
	SectionAdded   Section = "added"
	SectionChanged Section = "changed"
	SectionFixed   Section = "fixed"
	SectionRemoved Section = "removed"
)

// Patterns lists the regular expressions of each section. Changes matching
// none of them are added.
type Patterns struct {
	Fixed   []string `json:"fixed"`
	Removed []string `json:"removed"`
	Changed []string `json:"changed"`
}

// DefaultPatterns returns the patterns used when none are configured.
func DefaultPatterns() Patterns {
	return Patterns{
		Fixed:   []string{`\bfix(e[sd])?\b`, `\bbug\b`, `\bhotfix\b`, `\bresolve[sd]?\s+#\d+`},
		Removed: []string{`^(remove[sd]?|delete[sd]?|drop(s|ped)?)\b`},
		Changed: []string{`^(change[sd]?|update[sd]?|refactor(s|ed)?|rename[sd]?|improve[sd]?|bump(s|ed)?)\b`},
	}
}

type rule struct {
	section  Section
	patterns []*regexp.Regexp
}

// Classifier assigns commit messages to sections.
type Classifier struct {
	rules []rule
}

// New compiles patterns. Sections are tried in the order fixed, removed,
// changed. Patterns are compiled as case-insensitive and blank patterns are
// skipped.
func New(patterns Patterns) (*Classifier, error) {
	c := &Classifier{}
	for _, r := range []struct {
		section Section
		sources []string
	}{
		{SectionFixed, patterns.Fixed},
		{SectionRemoved, patterns.Removed},
		{SectionChanged, patterns.Changed},
	} {
		compiled, err := compile(r.sources)
		if err != nil {
			return nil, fmt.Errorf("%s patterns: %w", r.section, err)
		}
		c.rules = append(c.rules, rule{section: r.section, patterns: compiled})
	}
	return c, nil
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Section returns the section of the first rule matching message.
func (c *Classifier) Section(message string) Section {
	for _, r := range c.rules {
		for _, re := range r.patterns {
			if re.MatchString(message) {
				return r.section
			}
		}
	}
	return SectionAdded
}

// Apply moves every change of release into the section its name belongs to.
// The relative order of changes is preserved within each section.
func (c *Classifier) Apply(release changelog.Release) changelog.Release {
	out := release
	out.Added, out.Changed, out.Fixed, out.Removed = []changelog.Change{}, []changelog.Change{}, []changelog.Change{}, []changelog.Change{}

	for _, list := range [][]changelog.Change{release.Added, release.Changed, release.Fixed, release.Removed} {
		for _, change := range list {
			switch c.Section(change.Name) {
			case SectionFixed:
				out.Fixed = append(out.Fixed, change)
			case SectionRemoved:
				out.Removed = append(out.Removed, change)
			case SectionChanged:
				out.Changed = append(out.Changed, change)
			default:
				out.Added = append(out.Added, change)
			}
		}
	}
	return out
}
