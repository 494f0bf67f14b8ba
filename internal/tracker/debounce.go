package tracker

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiet period before a search fetch fires.
const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer coalesces rapid triggers into one call after a quiet period.
// Each Trigger resets the clock; only the function from the last Trigger
// runs. Used to hold back search fetches while the user is still typing.
type Debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive window falls back to
// DefaultDebounceWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously scheduled call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
