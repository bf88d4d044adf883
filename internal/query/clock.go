package query

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze "today" via
// SetClock. All relative range windows (7d/14d/30d/season) derive from it.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for range windows. Pass nil to reset to
// real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
