// Package fileutil holds the small filesystem helpers shared by the search
// engine and the CLI.
//
// # Root validation
//
// ValidateRoot checks the search target exactly once, before any traversal
// starts:
//
//	if err := fileutil.ValidateRoot(root); err != nil {
//	    if errors.Is(err, fileutil.ErrNotDirectory) {
//	        // the path exists but is a regular file
//	    }
//	    return err
//	}
//
// The check is not repeated for subdirectories. A directory that disappears
// while the walk is running is the walker's problem, not a configuration
// error.
//
// # Text reads
//
// ReadText reads a whole file and reports whether it decoded as UTF-8:
//
//	content, ok := fileutil.ReadText(path)
//	if !ok {
//	    // unreadable, vanished, or binary
//	}
//
// ReadText never returns an error. Open failures, short reads from a file
// being truncated, and invalid UTF-8 all collapse into ok == false, which the
// content matcher treats as "no match".
//
// # Entry resolution
//
// ResolveDir decides whether a directory entry should be descended into. It
// follows symbolic links the same way a stat call would, and reports false
// for entries that vanished between the listing and the stat.
package fileutil
