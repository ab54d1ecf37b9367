package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotDirectory is returned by ValidateRoot when the path exists but is not a directory.
var ErrNotDirectory = errors.New("provided path is not a folder")

// ErrInaccessible is returned by ValidateRoot when the path cannot be stat'ed.
var ErrInaccessible = errors.New("provided path can't be accessed")

// ValidateRoot checks that dir exists and is a directory.
func ValidateRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInaccessible, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return nil
}

// ResolveDir reports whether the entry at dir/entry.Name() is a directory.
// Symbolic links are followed. ok is false when the entry could not be
// resolved, typically because it was removed after the listing was taken.
func ResolveDir(dir string, entry fs.DirEntry) (isDir bool, ok bool) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), true
	}

	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		return false, false
	}
	return info.IsDir(), true
}
