package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForCoversAllIndices(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		p := New(workers)
		for _, n := range []int{0, 1, 7, 100, 1000} {
			var seen counters
			p.For(n, func(i int) { seen[i].Add(1) })
			for i := 0; i < n; i++ {
				if got := seen[i].Load(); got != 1 {
					t.Fatalf("workers=%d n=%d: index %d ran %d times", workers, n, i, got)
				}
			}
		}
	}
}

type counters [1000]atomic.Int32

func TestForZero(t *testing.T) {
	called := false
	New(4).For(0, func(int) { called = true })
	if called {
		t.Error("fn called for n = 0")
	}
}

func TestNewDefaultWorkers(t *testing.T) {
	if p := New(0); p.workers < 1 {
		t.Errorf("New(0) has %d workers", p.workers)
	}
	if p := New(-3); p.workers < 1 {
		t.Errorf("New(-3) has %d workers", p.workers)
	}
}

func TestPackageLevelFor(t *testing.T) {
	var sum atomic.Int64
	For(100, func(i int) { sum.Add(int64(i)) })
	if got := sum.Load(); got != 4950 {
		t.Errorf("sum = %d, want 4950", got)
	}
}

func BenchmarkFor(b *testing.B) {
	p := New(0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.For(256, func(i int) {})
	}
}
