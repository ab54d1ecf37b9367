package search

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/harrison/rsearch/internal/fileutil"
)

// Engine is the recursive directory walker.
type Engine struct {
	matcher  *Matcher
	pool     *Pool
	progress Progress
	log      Logger
	ignore   gitignore.IgnoreMatcher
	fanOut   bool

	filesVisited atomic.Int64
	dirErrors    atomic.Int64
}

// EngineConfig holds the collaborators of an Engine. Progress and Ignore may be nil.
type EngineConfig struct {
	Matcher  *Matcher
	Pool     *Pool
	Progress Progress
	Logger   Logger
	Ignore   gitignore.IgnoreMatcher
	FanOut   bool
}

// NewEngine creates an Engine. A nil Progress disables progress reporting and
// lets unreadable directories be logged as warnings.
func NewEngine(cfg EngineConfig) *Engine {
	log := cfg.Logger
	if log == nil {
		log = nopLogger{}
	}
	pool := cfg.Pool
	if pool == nil {
		pool = NewPool(DefaultWorkers)
	}
	return &Engine{
		matcher:  cfg.Matcher,
		pool:     pool,
		progress: cfg.Progress,
		log:      log,
		ignore:   cfg.Ignore,
		fanOut:   cfg.FanOut,
	}
}

// FilesVisited returns how many files the Engine has tested so far.
func (e *Engine) FilesVisited() int64 {
	return e.filesVisited.Load()
}

// DirErrors returns how many directories could not be listed.
func (e *Engine) DirErrors() int64 {
	return e.dirErrors.Load()
}

// Search walks dir and pushes every matching file path into into.
// It returns once every entry below dir has been visited.
func (e *Engine) Search(dir string, into *Aggregator) {
	f, err := os.Open(dir)
	if err != nil {
		e.dirErrors.Add(1)
		if e.progress == nil {
			e.log.LogWarn(fmt.Sprintf("%s can't be accessed", dir))
		} else {
			e.log.LogDebug(fmt.Sprintf("%s can't be accessed: %v", dir, err))
		}
		return
	}
	entries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		// Entries read before the failure are still walked.
		e.log.LogDebug(fmt.Sprintf("partial listing of %s: %v", dir, err))
	}

	var wg sync.WaitGroup
	for _, entry := range entries {
		name := entry.Name()
		if !utf8.ValidString(name) {
			e.log.LogDebug(fmt.Sprintf("skipping non UTF-8 name in %s", dir))
			continue
		}

		isDir, ok := fileutil.ResolveDir(dir, entry)
		if !ok {
			continue
		}

		path := filepath.Join(dir, name)
		if e.ignore != nil && e.ignore.Match(path, isDir) {
			continue
		}

		if isDir {
			if e.fanOut {
				e.pool.Go(&wg, func() { e.Search(path, into) })
			} else {
				e.pool.Do(func() { e.Search(path, into) })
			}
			continue
		}

		e.filesVisited.Add(1)
		if e.progress != nil {
			e.progress.Advance(1)
		}

		if e.matcher.Matches(name, path) {
			into.Push(path)
		}
	}
	wg.Wait()
}
