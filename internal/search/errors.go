package search

import "fmt"

// PatternError reports a pattern that failed to compile.
type PatternError struct {
	// Kind is "name" or "content".
	Kind    string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	if e.Kind == "content" {
		return fmt.Sprintf("given look-in search is not a valid regex: %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("given search is not a valid regex: %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
