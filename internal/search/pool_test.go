package search

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPool_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultWorkers, NewPool(0).Size())
	assert.Equal(t, DefaultWorkers, NewPool(-3).Size())
	assert.Equal(t, 3, NewPool(3).Size())
}

func TestPool_DoWaitsForCompletion(t *testing.T) {
	p := NewPool(2)
	var done atomic.Bool
	p.Do(func() {
		time.Sleep(10 * time.Millisecond)
		done.Store(true)
	})
	assert.True(t, done.Load())
}

func TestPool_DoNestedDeeperThanPool(t *testing.T) {
	p := NewPool(1)

	var depth func(n int) int
	depth = func(n int) int {
		if n == 0 {
			return 0
		}
		var got int
		p.Do(func() { got = depth(n - 1) })
		return got + 1
	}

	finished := make(chan int, 1)
	go func() { finished <- depth(100) }()

	select {
	case got := <-finished:
		assert.Equal(t, 100, got)
	case <-time.After(5 * time.Second):
		t.Fatal("nested Do deadlocked")
	}
}

func TestPool_GoBoundsConcurrency(t *testing.T) {
	const size = 3
	p := NewPool(size)

	var running, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		p.Go(&wg, func() {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			running.Add(-1)
		})
	}
	wg.Wait()

	// size pool goroutines plus the submitting goroutine running inline.
	assert.LessOrEqual(t, peak.Load(), int64(size+1))
	assert.Equal(t, int64(0), running.Load())
}

func TestPool_GoRunsEveryUnit(t *testing.T) {
	p := NewPool(4)
	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		p.Go(&wg, func() { count.Add(1) })
	}
	wg.Wait()
	assert.Equal(t, int64(1000), count.Load())
}
