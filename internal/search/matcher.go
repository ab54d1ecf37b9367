package search

import (
	"regexp"

	"github.com/harrison/rsearch/internal/fileutil"
)

// Matcher decides whether a file is a search hit. It is safe for concurrent use.
type Matcher struct {
	name    *regexp.Regexp
	content *regexp.Regexp
}

// NewMatcher compiles the content pattern, when non-empty, and then the name
// pattern. Compile failures are returned as *PatternError, so when both are
// invalid the content pattern is the one reported.
func NewMatcher(namePattern, contentPattern string) (*Matcher, error) {
	m := &Matcher{}
	if contentPattern != "" {
		content, err := regexp.Compile(contentPattern)
		if err != nil {
			return nil, &PatternError{Kind: "content", Pattern: contentPattern, Err: err}
		}
		m.content = content
	}

	name, err := regexp.Compile(namePattern)
	if err != nil {
		return nil, &PatternError{Kind: "name", Pattern: namePattern, Err: err}
	}
	m.name = name
	return m, nil
}

// HasContentFilter reports whether a content pattern is configured.
func (m *Matcher) HasContentFilter() bool {
	return m.content != nil
}

// MatchesName tests the name pattern against a base name.
func (m *Matcher) MatchesName(name string) bool {
	return m.name.MatchString(name)
}

// Matches reports whether the file at path, whose base name is name, is a hit.
// The file is only read when the name matches and a content pattern is set.
func (m *Matcher) Matches(name, path string) bool {
	if !m.MatchesName(name) {
		return false
	}
	if !m.HasContentFilter() {
		return true
	}

	text, ok := fileutil.ReadText(path)
	if !ok {
		return false
	}
	return m.content.MatchString(text)
}

// String returns the patterns for logging.
func (m *Matcher) String() string {
	if !m.HasContentFilter() {
		return "name=" + m.name.String()
	}
	return "name=" + m.name.String() + " content=" + m.content.String()
}
