// Package questions implements the technical question library and the
// generator that turns a candidate's tech stack into interview questions.
package questions

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"talentscout/pkg/logx"
)

//go:embed library.yaml
var defaultLibraryYAML []byte

// Entry pairs a technology keyword with its curated interview questions.
type Entry struct {
	Keyword   string   `yaml:"keyword"`
	Questions []string `yaml:"questions"`
}

// Library is an ordered, immutable collection of keyword entries. Matching
// and question distribution follow the entry order, so the same tech stack
// always produces the same question sequence.
type Library struct {
	entries []Entry
}

// NewLibrary builds a library from the given entries. Tests use this to
// substitute a smaller table.
func NewLibrary(entries []Entry) *Library {
	return &Library{entries: entries}
}

// DefaultLibrary loads the embedded question table.
func DefaultLibrary() (*Library, error) {
	var entries []Entry
	if err := yaml.Unmarshal(defaultLibraryYAML, &entries); err != nil {
		return nil, logx.Errorf("failed to parse embedded question library: %w", err)
	}
	return NewLibrary(entries), nil
}

// Match returns the entries whose keyword appears anywhere in the lowercased
// tech stack text, in library order. Matching is substring containment, not
// tokenized, so short keywords like "api" can match inside longer words.
func (l *Library) Match(techStack string) []Entry {
	lowered := strings.ToLower(techStack)

	var matched []Entry
	for _, entry := range l.entries {
		if strings.Contains(lowered, entry.Keyword) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Len reports the number of entries in the library.
func (l *Library) Len() int {
	return len(l.entries)
}
