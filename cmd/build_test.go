package cmd

import (
	"sync"
	"sync/atomic"
	"testing"
)

// countingReporter records lifecycle calls so concurrent wiring can be
// checked without a terminal.
type countingReporter struct {
	starts   int32
	updates  int32
	finishes int32
	total    int32
}

func (r *countingReporter) Start(total int, description string) {
	atomic.AddInt32(&r.starts, 1)
	atomic.StoreInt32(&r.total, int32(total))
}

func (r *countingReporter) Update(current int, message string) {
	atomic.AddInt32(&r.updates, 1)
}

func (r *countingReporter) Finish() {
	atomic.AddInt32(&r.finishes, 1)
}

// The fetch pool fires the progress callback from up to Concurrency worker
// goroutines at once; the reporter must still be started exactly once.
func TestFetchProgress_ConcurrentCallbacks(t *testing.T) {
	reporter := &countingReporter{}
	fn, finish := fetchProgress(reporter)

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(done int) {
			defer wg.Done()
			fn(done, workers, "https://github.com/a/b/blob/sha/f.py")
		}(i + 1)
	}
	wg.Wait()
	finish()

	if got := atomic.LoadInt32(&reporter.starts); got != 1 {
		t.Errorf("reporter started %d times, want exactly 1", got)
	}
	if got := atomic.LoadInt32(&reporter.total); got != workers {
		t.Errorf("reporter total: got %d, want %d", got, workers)
	}
	if got := atomic.LoadInt32(&reporter.updates); got != workers {
		t.Errorf("reporter updated %d times, want %d", got, workers)
	}
	if got := atomic.LoadInt32(&reporter.finishes); got != 1 {
		t.Errorf("reporter finished %d times, want 1", got)
	}
}

// When every locator is served from cache or the plan is empty, the callback
// never fires and the reporter must not be finished either.
func TestFetchProgress_NoCallbacksNoFinish(t *testing.T) {
	reporter := &countingReporter{}
	_, finish := fetchProgress(reporter)
	finish()

	if reporter.starts != 0 || reporter.finishes != 0 {
		t.Errorf("reporter touched without callbacks: %+v", reporter)
	}
}
