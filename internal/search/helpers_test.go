package search

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root. Keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// relSet converts absolute match paths into a sorted list of slash-separated relative paths.
func relSet(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}
}

// recordingProgress is a Progress that keeps every observed position.
type recordingProgress struct {
	mu              sync.Mutex
	total           int64
	visited         int64
	positions       []int64
	incrementCalls  int
	setTotalCalls   int
	finalized       bool
	advanceAfterEnd bool
}

func (p *recordingProgress) SetTotal(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setTotalCalls++
	p.total = n
}

func (p *recordingProgress) IncrementTotal(delta int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.incrementCalls++
	p.total += delta
}

func (p *recordingProgress) Advance(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finalized {
		p.advanceAfterEnd = true
	}
	p.visited += n
	p.positions = append(p.positions, p.visited)
}

func (p *recordingProgress) Finalize() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finalized = true
}

// recordingLogger collects log lines per level.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	debug []string
}

func (l *recordingLogger) LogDebug(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, message)
}

func (l *recordingLogger) LogWarn(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, message)
}

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warns...)
}

// vanishingDir is an ignore matcher that ignores nothing but deletes target
// the first time it is asked about it. The walker has already listed the
// parent by then, so it will try to descend into a directory that is gone.
// Unlike chmod this also works when the tests run as root.
type vanishingDir struct {
	target string
	once   sync.Once
}

func (v *vanishingDir) Match(path string, isDir bool) bool {
	if path == v.target {
		v.once.Do(func() { os.RemoveAll(v.target) })
	}
	return false
}
