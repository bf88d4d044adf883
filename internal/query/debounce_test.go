package query

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestDebouncer_FiresAfterDelay(t *testing.T) {
	fc := clockwork.NewFakeClock()
	d := NewDebouncer(fc, 300*time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })

	fc.Advance(299 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("fired before the delay elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	fc.Advance(1 * time.Millisecond)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("did not fire after the delay elapsed")
	}
}

func TestDebouncer_LastTriggerWins(t *testing.T) {
	fc := clockwork.NewFakeClock()
	d := NewDebouncer(fc, 300*time.Millisecond)

	fired := make(chan string, 2)
	d.Trigger(func() { fired <- "first" })
	fc.Advance(200 * time.Millisecond)
	d.Trigger(func() { fired <- "second" })

	// The first action's original deadline passes; only the second may fire.
	fc.Advance(300 * time.Millisecond)
	select {
	case got := <-fired:
		assert.Equal(t, "second", got)
	case <-time.After(time.Second):
		t.Fatal("replacement trigger never fired")
	}

	select {
	case got := <-fired:
		t.Fatalf("cancelled trigger fired: %q", got)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	fc := clockwork.NewFakeClock()
	d := NewDebouncer(fc, 300*time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Stop()

	fc.Advance(time.Second)
	select {
	case <-fired:
		t.Fatal("stopped debouncer fired")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestDebouncer_NilClockDefaultsToRealTime(t *testing.T) {
	d := NewDebouncer(nil, time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("real-clock debouncer never fired")
	}
}
