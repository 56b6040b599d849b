package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var mu sync.Mutex
	seen := make(map[int]bool)

	work := make([]func(), 100)
	for i := range work {
		work[i] = func() {
			mu.Lock()
			seen[i] = true
			mu.Unlock()
		}
	}

	pool.ExecuteAll(work)

	if len(seen) != len(work) {
		t.Errorf("executed %d items, want %d", len(seen), len(work))
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var counter atomic.Int64
	work := make([]func(), 10)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	pool.ExecuteAll(work)

	if counter.Load() != 10 {
		t.Errorf("closed pool ran %d items inline, want 10", counter.Load())
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const goroutines, perGoroutine = 10, 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			work := make([]func(), perGoroutine)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if counter.Load() != goroutines*perGoroutine {
		t.Errorf("counter = %d, want %d", counter.Load(), goroutines*perGoroutine)
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var slow, fast atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			work[i] = func() { fast.Add(1) }
		}
	}

	pool.ExecuteAll(work)

	if slow.Load() != 10 || fast.Load() != 90 {
		t.Errorf("slow = %d, fast = %d, want 10 and 90", slow.Load(), fast.Load())
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		work := make([]func(), 100)
		for j := range work {
			work[j] = func() {}
		}
		pool.ExecuteAll(work)
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	// Allow for some variance (test framework goroutines, etc.)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Band Tests
// =============================================================================

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name           string
		y0, y1, n, min int
		wantBands      int
	}{
		{"even", 0, 100, 4, 1, 4},
		{"uneven", 3, 13, 3, 1, 3},
		{"min rows limits count", 0, 10, 8, 4, 2},
		{"fewer rows than bands", 0, 3, 8, 1, 3},
		{"single row", 5, 6, 4, 16, 1},
		{"empty", 4, 4, 4, 1, 0},
		{"inverted", 9, 4, 4, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := SplitRows(tt.y0, tt.y1, tt.n, tt.min)
			if len(bands) != tt.wantBands {
				t.Fatalf("len(bands) = %d, want %d", len(bands), tt.wantBands)
			}
			if len(bands) == 0 {
				return
			}
			// Bands must tile the range exactly, in order.
			y := tt.y0
			lo, hi := bands[0].Rows(), bands[0].Rows()
			for _, b := range bands {
				if b.Y0 != y || b.Rows() <= 0 {
					t.Fatalf("band %+v does not continue at %d", b, y)
				}
				y = b.Y1
				lo, hi = min(lo, b.Rows()), max(hi, b.Rows())
			}
			if y != tt.y1 {
				t.Errorf("bands end at %d, want %d", y, tt.y1)
			}
			if hi-lo > 1 {
				t.Errorf("band sizes range %d..%d, want difference <= 1", lo, hi)
			}
		})
	}
}

func TestForEachBandCoversRows(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	rows := make([]atomic.Int32, 50)
	pool.ForEachBand(0, len(rows), 2, func(b Band) {
		for y := b.Y0; y < b.Y1; y++ {
			rows[y].Add(1)
		}
	})

	for y := range rows {
		if n := rows[y].Load(); n != 1 {
			t.Errorf("row %d visited %d times, want 1", y, n)
		}
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ForEachBand(b *testing.B) {
	pool := NewWorkerPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	var sink atomic.Int64
	b.ReportAllocs()
	for b.Loop() {
		pool.ForEachBand(0, 1080, 16, func(band Band) {
			sink.Add(int64(band.Rows()))
		})
	}
}
