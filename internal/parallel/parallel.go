// Package parallel distributes independent loop iterations over a pool
// of goroutines. The heightmap filters use it to process image rows
// concurrently; each iteration must be independent of the others.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines fed from one shared counter.
// Workers claim iteration indices by atomic increment, so imbalanced
// iterations (e.g. rows near a pole with fewer pixels) do not stall the
// rest.
//
// Thread safety: Pool is safe for concurrent use, but one For call at a
// time keeps the workers busiest.
type Pool struct {
	workers int
}

// New creates a pool using the given number of workers. If workers is 0
// or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// For runs fn(i) for every i in [0, n), distributing the iterations over
// the workers, and returns when all of them are done. With a single
// worker, or when n is small, it degrades to a plain loop on the calling
// goroutine.
func (p *Pool) For(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if p.workers == 1 || n < 2*p.workers {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(p.workers)
	for w := 0; w < p.workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := next.Add(1) - 1
				if i >= int64(n) {
					return
				}
				fn(int(i))
			}
		}()
	}
	wg.Wait()
}

// For runs fn over [0, n) with a pool sized to the machine.
func For(n int, fn func(i int)) {
	New(0).For(n, fn)
}
