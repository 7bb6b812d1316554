package fnkit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { count.Add(1) })
	defer d.Stop()

	d.Call()
	d.Call()
	d.Call()

	time.Sleep(200 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Fatalf("expected one invocation, got %d", got)
	}
}

func TestDebouncerFlush(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(time.Hour, func() { count.Add(1) })
	defer d.Stop()

	d.Call()
	d.Flush()
	if got := count.Load(); got != 1 {
		t.Fatalf("flush should run the pending call, got %d", got)
	}

	// Nothing pending now, flush is a no-op.
	d.Flush()
	if got := count.Load(); got != 1 {
		t.Fatalf("flush with nothing pending ran fn, count %d", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { count.Add(1) })

	d.Call()
	d.Stop()
	d.Call()

	time.Sleep(100 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Fatalf("stopped debouncer still ran fn %d times", got)
	}
}

func TestThrottlerLeadingEdge(t *testing.T) {
	var count atomic.Int32
	th := NewThrottler(time.Hour, func() { count.Add(1) })
	defer th.Stop()

	th.Call()
	if got := count.Load(); got != 1 {
		t.Fatalf("first call should run immediately, got %d", got)
	}
}

func TestThrottlerTrailingCapture(t *testing.T) {
	var count atomic.Int32
	th := NewThrottler(50*time.Millisecond, func() { count.Add(1) })
	defer th.Stop()

	th.Call() // leading, runs now
	th.Call() // inside interval, captured
	th.Call() // still inside, already captured

	if got := count.Load(); got != 1 {
		t.Fatalf("expected only the leading run so far, got %d", got)
	}

	time.Sleep(250 * time.Millisecond)
	if got := count.Load(); got != 2 {
		t.Fatalf("expected leading plus one trailing run, got %d", got)
	}
}

func TestThrottlerStopCancelsTrailing(t *testing.T) {
	var count atomic.Int32
	th := NewThrottler(50*time.Millisecond, func() { count.Add(1) })

	th.Call()
	th.Call()
	th.Stop()

	time.Sleep(200 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Fatalf("stop should cancel the trailing run, got %d", got)
	}
}

func TestOnce(t *testing.T) {
	var count atomic.Int32
	f := Once(func() int {
		return int(count.Add(1))
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := f(); got != 1 {
				t.Errorf("got %d, want 1", got)
			}
		}()
	}
	wg.Wait()

	if got := count.Load(); got != 1 {
		t.Fatalf("fn ran %d times", got)
	}
}

func TestMemoize(t *testing.T) {
	var calls atomic.Int32
	square := Memoize(func(n int) int {
		calls.Add(1)
		return n * n
	})

	for i := 0; i < 3; i++ {
		if got := square(4); got != 16 {
			t.Fatalf("square(4) = %d", got)
		}
		if got := square(5); got != 25 {
			t.Fatalf("square(5) = %d", got)
		}
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected one computation per key, got %d", got)
	}
}
