package search

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	gitignore "github.com/monochromegane/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/harrison/rsearch/internal/fileutil"
)

// initialCapacity pre-sizes the match collection.
const initialCapacity = 16384

// Options configures one search. It is read-only once passed to New.
type Options struct {
	// Root is the directory to search. It must exist and be a directory.
	Root string
	// NamePattern is matched against each file's base name.
	NamePattern string
	// ContentPattern, when non-empty, must also match the file's UTF-8 text.
	ContentPattern string
	// ShowProgress runs the Counter alongside the Engine and reports into Progress.
	ShowProgress bool
	// Workers is the pool size (0 = DefaultWorkers).
	Workers int
	// FanOut dispatches all subdirectories of a directory before joining them.
	// When false each subdirectory is searched to completion before the next sibling.
	FanOut bool
	// RespectGitignore skips paths excluded by Root/.gitignore.
	RespectGitignore bool
}

// Result is the outcome of a completed search.
type Result struct {
	Root         string
	Matches      []string
	FilesVisited int64
	DirErrors    int64
	Duration     time.Duration
}

// Searcher runs one configured search.
type Searcher struct {
	opts     Options
	matcher  *Matcher
	pool     *Pool
	progress Progress
	log      Logger
	ignore   gitignore.IgnoreMatcher
}

// New validates opts and prepares a Searcher. Pattern errors are returned as
// *PatternError; root errors wrap fileutil.ErrInaccessible or fileutil.ErrNotDirectory.
// progress is only used when opts.ShowProgress is set; log may be nil.
func New(opts Options, progress Progress, log Logger) (*Searcher, error) {
	matcher, err := NewMatcher(opts.NamePattern, opts.ContentPattern)
	if err != nil {
		return nil, err
	}
	if err := fileutil.ValidateRoot(opts.Root); err != nil {
		return nil, err
	}
	if log == nil {
		log = nopLogger{}
	}
	if !opts.ShowProgress {
		progress = nil
	} else if progress == nil {
		return nil, errors.New("progress enabled without a progress reporter")
	}

	s := &Searcher{
		opts:     opts,
		matcher:  matcher,
		pool:     NewPool(opts.Workers),
		progress: progress,
		log:      log,
	}
	if opts.RespectGitignore {
		s.ignore = loadIgnore(opts.Root, log)
	}
	return s, nil
}

// Run executes the search and returns once all traversal work has joined.
func (s *Searcher) Run() *Result {
	start := time.Now()
	into := NewAggregator(initialCapacity)
	engine := NewEngine(EngineConfig{
		Matcher:  s.matcher,
		Pool:     s.pool,
		Progress: s.progress,
		Logger:   s.log,
		Ignore:   s.ignore,
		FanOut:   s.opts.FanOut,
	})

	s.log.LogDebug(fmt.Sprintf("searching %s (%s, workers=%d, fan-out=%t)",
		s.opts.Root, s.matcher, s.pool.Size(), s.opts.FanOut))

	if s.progress != nil {
		s.progress.SetTotal(0)
		counter := NewCounter(s.pool, s.progress, s.ignore, s.opts.FanOut)

		var g errgroup.Group
		g.Go(func() error {
			counter.Count(s.opts.Root)
			return nil
		})
		g.Go(func() error {
			engine.Search(s.opts.Root, into)
			return nil
		})
		_ = g.Wait()
		s.progress.Finalize()
	} else {
		engine.Search(s.opts.Root, into)
	}

	return &Result{
		Root:         s.opts.Root,
		Matches:      into.Drain(),
		FilesVisited: engine.FilesVisited(),
		DirErrors:    engine.DirErrors(),
		Duration:     time.Since(start),
	}
}

// loadIgnore parses root/.gitignore. A missing or unparsable file disables
// ignore rules.
func loadIgnore(root string, log Logger) gitignore.IgnoreMatcher {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.LogWarn(fmt.Sprintf("could not read %s: %v", path, err))
		}
		return nil
	}

	matcher, err := gitignore.NewGitIgnore(path, root)
	if err != nil {
		log.LogWarn(fmt.Sprintf("could not parse %s: %v", path, err))
		return nil
	}
	return matcher
}
