package search

import "sync"

// Aggregator collects matched paths from every traversal branch.
type Aggregator struct {
	mu    sync.Mutex
	paths []string
}

// NewAggregator returns an Aggregator with room for capacity paths.
func NewAggregator(capacity int) *Aggregator {
	if capacity < 0 {
		capacity = 0
	}
	return &Aggregator{paths: make([]string, 0, capacity)}
}

// Push records one matched path. Safe for concurrent use.
func (a *Aggregator) Push(path string) {
	a.mu.Lock()
	a.paths = append(a.paths, path)
	a.mu.Unlock()
}

// Len returns the number of paths pushed so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.paths)
}

// Drain returns every pushed path in push order and empties the Aggregator.
// Call it only after all pushing branches have returned.
func (a *Aggregator) Drain() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	paths := a.paths
	a.paths = nil
	if paths == nil {
		paths = []string{}
	}
	return paths
}
