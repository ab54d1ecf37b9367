// Package search implements the concurrent traversal-and-filter engine behind
// rsearch.
//
// A search is built from four parts:
//
//   - Matcher: a name pattern that must match an entry's base name, plus an
//     optional content pattern that must match the file's UTF-8 text.
//   - Engine: the recursive directory walker. It advances the progress
//     counter once per file and pushes every match into an Aggregator.
//   - Counter: an advisory pre-pass that grows the progress total one
//     directory at a time while the Engine is still running.
//   - Aggregator: the single mutex-guarded collection every traversal branch
//     writes into.
//
// Both walkers dispatch subdirectories through a fixed-size Pool. A saturated
// pool runs the unit on the caller's goroutine instead of queueing it, so the
// number of in-flight goroutines stays bounded regardless of tree depth and
// the recursion can never deadlock waiting for a free worker.
//
// Searcher wires the parts together:
//
//	s, err := search.New(search.Options{
//	    Root:         "/var/log",
//	    NamePattern:  `\.log$`,
//	    ShowProgress: true,
//	    Workers:      8,
//	}, bar, log)
//	if err != nil {
//	    return err // invalid pattern or root
//	}
//	result := s.Run()
//
// Run never fails. Unreadable directories and vanished entries are skipped
// locally and do not affect sibling subtrees.
package search
