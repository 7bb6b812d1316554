// Package fnkit wraps functions with rate-limiting and caching behavior:
// trailing-edge debounce, leading-edge throttle with trailing capture,
// run-once, and memoization.
package fnkit

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into a single trailing-edge
// invocation: fn runs once, after delay has elapsed since the last Call.
type Debouncer struct {
	mu      sync.Mutex
	fn      func()
	delay   time.Duration
	timer   *time.Timer
	stopped bool
}

// NewDebouncer wraps fn with a trailing-edge debounce of delay.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{fn: fn, delay: delay}
}

// Call schedules fn to run after the delay, resetting any pending run.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	fn := d.fn
	d.mu.Unlock()
	fn()
}

// Flush runs a pending invocation immediately, if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	if pending {
		d.timer = nil
	}
	fn := d.fn
	d.mu.Unlock()
	if pending {
		fn()
	}
}

// Stop cancels any pending invocation. The debouncer ignores Call afterward.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler limits fn to one invocation per interval. The first Call in an
// interval runs fn immediately; later calls in the same interval are
// captured and replayed once at the interval boundary.
type Throttler struct {
	mu       sync.Mutex
	fn       func()
	interval time.Duration
	lastRun  time.Time
	trailing *time.Timer
	stopped  bool
}

// NewThrottler wraps fn so it runs at most once per interval.
func NewThrottler(interval time.Duration, fn func()) *Throttler {
	return &Throttler{fn: fn, interval: interval}
}

// Call invokes fn if the interval has elapsed; otherwise it arms a trailing
// run at the end of the current interval.
func (t *Throttler) Call() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	now := time.Now()
	if elapsed := now.Sub(t.lastRun); elapsed >= t.interval {
		t.lastRun = now
		fn := t.fn
		t.mu.Unlock()
		fn()
		return
	} else if t.trailing == nil {
		t.trailing = time.AfterFunc(t.interval-elapsed, t.fireTrailing)
	}
	t.mu.Unlock()
}

func (t *Throttler) fireTrailing() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.trailing = nil
	t.lastRun = time.Now()
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// Stop cancels any pending trailing run. The throttler ignores Call
// afterward.
func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.trailing != nil {
		t.trailing.Stop()
		t.trailing = nil
	}
}

// Once wraps fn so only the first call runs it. Every call returns the
// first call's result.
func Once[V any](fn func() V) func() V {
	var (
		once   sync.Once
		result V
	)
	return func() V {
		once.Do(func() { result = fn() })
		return result
	}
}

// Memoize caches fn's results by key. Concurrent callers with the same key
// may both compute; the first write wins.
func Memoize[K comparable, V any](fn func(K) V) func(K) V {
	var mu sync.Mutex
	cache := make(map[K]V)
	return func(k K) V {
		mu.Lock()
		if v, ok := cache[k]; ok {
			mu.Unlock()
			return v
		}
		mu.Unlock()

		v := fn(k)

		mu.Lock()
		if prior, ok := cache[k]; ok {
			v = prior
		} else {
			cache[k] = v
		}
		mu.Unlock()
		return v
	}
}
