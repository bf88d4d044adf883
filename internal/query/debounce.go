package query

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer coalesces bursts of triggers into a single delayed action.
// Each Trigger cancels any pending action and schedules the new one:
// last write wins, nothing is queued. Used to avoid re-filtering on every
// keystroke and to batch preference writes.
type Debouncer struct {
	clock clockwork.Clock
	delay time.Duration

	mu    sync.Mutex
	timer clockwork.Timer
}

// NewDebouncer creates a debouncer with the given delay. A nil clock uses
// real time.
func NewDebouncer(c clockwork.Clock, delay time.Duration) *Debouncer {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &Debouncer{clock: c, delay: delay}
}

// Trigger schedules fn to run after the delay, replacing any pending action.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, fn)
}

// Stop cancels any pending action.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
