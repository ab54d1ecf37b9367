// Package export saves the result of a search to a file as plain text, JSON or YAML.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/rsearch/internal/search"
)

// Format selects the encoding of a saved report.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want text, json or yaml)", s)
	}
}

// Report is the saved form of one search.
type Report struct {
	SearchID       string    `json:"search_id" yaml:"search_id"`
	Root           string    `json:"root" yaml:"root"`
	NamePattern    string    `json:"name_pattern" yaml:"name_pattern"`
	ContentPattern string    `json:"content_pattern,omitempty" yaml:"content_pattern,omitempty"`
	Count          int       `json:"count" yaml:"count"`
	Matches        []string  `json:"matches" yaml:"matches"`
	GeneratedAt    time.Time `json:"generated_at" yaml:"generated_at"`
}

// NewReport builds a Report from the search options and result.
func NewReport(searchID string, opts search.Options, result *search.Result) Report {
	matches := result.Matches
	if matches == nil {
		matches = []string{}
	}
	return Report{
		SearchID:       searchID,
		Root:           opts.Root,
		NamePattern:    opts.NamePattern,
		ContentPattern: opts.ContentPattern,
		Count:          len(matches),
		Matches:        matches,
		GeneratedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

// Encode renders the report. Text is one path per line with no header so it
// can be piped into other tools.
func Encode(r Report, format Format) ([]byte, error) {
	switch format {
	case FormatText, "":
		var buf bytes.Buffer
		for _, m := range r.Matches {
			buf.WriteString(m)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, fmt.Errorf("failed to encode report as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode report as yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Save encodes the report and writes it to path under a file lock.
func Save(path string, r Report, format Format) error {
	data, err := Encode(r, format)
	if err != nil {
		return err
	}
	if err := lockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to save matches to %s: %w", path, err)
	}
	return nil
}
