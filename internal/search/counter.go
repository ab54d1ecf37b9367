package search

import (
	"os"
	"path/filepath"
	"sync"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/harrison/rsearch/internal/fileutil"
)

// Counter walks the tree only to grow the progress total. It never reports
// errors: a directory it cannot open contributes nothing.
type Counter struct {
	pool     *Pool
	progress Progress
	ignore   gitignore.IgnoreMatcher
	fanOut   bool
}

// NewCounter creates a Counter reporting into progress, which must not be nil.
func NewCounter(pool *Pool, progress Progress, ignore gitignore.IgnoreMatcher, fanOut bool) *Counter {
	if pool == nil {
		pool = NewPool(DefaultWorkers)
	}
	return &Counter{pool: pool, progress: progress, ignore: ignore, fanOut: fanOut}
}

// Count adds the number of entries in dir, and recursively in every
// subdirectory, to the progress total. Each directory's entries are added as
// soon as that directory has been listed.
func (c *Counter) Count(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	entries, _ := f.ReadDir(-1)
	f.Close()

	subdirs := make([]string, 0, len(entries))
	var counted int64
	for _, entry := range entries {
		isDir, ok := fileutil.ResolveDir(dir, entry)
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if c.ignore != nil && c.ignore.Match(path, isDir) {
			continue
		}
		counted++
		if isDir {
			subdirs = append(subdirs, path)
		}
	}
	if counted > 0 {
		c.progress.IncrementTotal(counted)
	}

	var wg sync.WaitGroup
	for _, path := range subdirs {
		path := path
		if c.fanOut {
			c.pool.Go(&wg, func() { c.Count(path) })
		} else {
			c.pool.Do(func() { c.Count(path) })
		}
	}
	wg.Wait()
}
