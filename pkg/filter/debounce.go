package filter

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last input event before
// a recompute fires. Continuous inputs (typing, slider drags) trigger
// one recompute per user-intent change, not one per keystroke.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces a burst of trigger calls into a single callback
// after a quiet interval. Each trigger carries a caller-provided stamp;
// the callback runs on a timer goroutine and receives the stamp of the
// last trigger, captured on the caller's side. Wire the callback to a
// dispatch queue, not to shared state.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func(stamp uint64)
	timer    *time.Timer
	stamp    uint64
	stopped  bool
}

// NewDebouncer creates a debouncer invoking fn after interval of quiet.
// A non-positive interval falls back to DefaultDebounce.
func NewDebouncer(interval time.Duration, fn func(stamp uint64)) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Trigger (re)starts the quiet period. The stamp is handed to the
// callback as given here; the timer goroutine never reads it from
// anywhere else.
func (db *Debouncer) Trigger(stamp uint64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.stopped {
		return
	}
	if db.timer != nil {
		db.timer.Stop()
	}
	db.stamp = stamp
	db.timer = time.AfterFunc(db.interval, func() { db.fn(stamp) })
}

// Flush fires the pending callback immediately, if any. Used on
// discrete boundaries such as slider release.
func (db *Debouncer) Flush() {
	db.mu.Lock()
	pending := db.timer != nil && db.timer.Stop()
	db.timer = nil
	stamp := db.stamp
	stopped := db.stopped
	db.mu.Unlock()
	if pending && !stopped {
		db.fn(stamp)
	}
}

// Cancel drops any pending callback without firing it. Unlike Stop the
// debouncer stays usable.
func (db *Debouncer) Cancel() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}

// Stop cancels any pending callback and refuses further triggers
func (db *Debouncer) Stop() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stopped = true
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
