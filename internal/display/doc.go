// Package display renders the user-facing lines rsearch writes to stdout:
// the search header, the numbered match list, and the one-line error and
// warning messages.
//
//	display.Header(os.Stdout, root)
//	if len(matches) == 0 {
//	    display.Warn(os.Stdout, "no match")
//	} else {
//	    display.Matches(os.Stdout, matches)
//	}
//
// Colors come from github.com/fatih/color, which disables itself when stdout is
// not a terminal or NO_COLOR is set. Every function takes an io.Writer so the
// output can be captured in tests.
package display
