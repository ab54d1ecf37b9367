package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	// lockTimeout bounds how long a save waits for another writer.
	lockTimeout    = 10 * time.Second
	lockRetryDelay = 50 * time.Millisecond
)

// lockPath returns the sidecar lock file guarding path.
// Writing "matches.json" uses "matches.json.lock".
func lockPath(path string) string {
	return path + ".lock"
}

// lockAndWrite replaces path with data while holding an exclusive flock on
// the sidecar lock file. Concurrent rsearch processes saving to the same file
// serialize here and a reader always sees one complete report.
func lockAndWrite(path string, data []byte) error {
	// The lock file lives next to the target, so the directory must exist first.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(lockPath(path))
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("timed out waiting for lock on %s", lock.Path())
	}
	defer lock.Unlock()

	tempPath, err := writeTemp(dir, filepath.Base(path), data)
	if err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// writeTemp writes data to a new 0644 file in dir and returns its path.
// The temp file shares the target's directory so the rename never crosses
// filesystems. On failure nothing is left behind.
func writeTemp(dir, base string, data []byte) (_ string, err error) {
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = f.Chmod(0644); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}
