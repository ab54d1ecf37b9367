package search

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultWorkers is the pool size used when Options.Workers is not set.
const DefaultWorkers = 8

// Pool bounds the number of worker goroutines running traversal units.
//
// A unit submitted to a saturated pool runs inline on the submitting
// goroutine. Recursive units therefore never wait for a slot held by one of
// their own ancestors.
type Pool struct {
	size int
	sem  *semaphore.Weighted
}

// NewPool returns a Pool with size worker slots. size < 1 means DefaultWorkers.
func NewPool(size int) *Pool {
	if size < 1 {
		size = DefaultWorkers
	}
	return &Pool{size: size, sem: semaphore.NewWeighted(int64(size))}
}

// Size returns the number of worker slots.
func (p *Pool) Size() int {
	return p.size
}

// Do runs fn in the pool and blocks until it returns.
func (p *Pool) Do(fn func()) {
	if !p.sem.TryAcquire(1) {
		fn()
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer p.sem.Release(1)
		fn()
	}()
	<-done
}

// Go runs fn in the pool without waiting. The caller joins on wg.
// When no slot is free, fn has already completed by the time Go returns.
func (p *Pool) Go(wg *sync.WaitGroup, fn func()) {
	if !p.sem.TryAcquire(1) {
		fn()
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer p.sem.Release(1)
		fn()
	}()
}
