// Package debounce turns a rapidly changing value into one that only
// updates after a quiet period.
package debounce

import (
	"time"

	"userexplorer/internal/clock"
)

// DefaultDelay is the quiet period used when none is configured
const DefaultDelay = 300 * time.Millisecond

// Fired is emitted when a timer elapses uninterrupted. Value is the input
// captured when the timer was armed; Seq identifies that arm.
type Fired[T comparable] struct {
	Seq   uint64
	Value T
}

// Debouncer holds the stable value and at most one pending timer.
//
// Set, Deliver and Close must be called from the owner's event loop. The
// timer callback does not touch Debouncer state: it only hands a Fired to
// emit, which is expected to post it back to that loop (for example with
// tea.Program.Send), where Deliver applies it.
type Debouncer[T comparable] struct {
	clock  clock.Clock
	delay  time.Duration
	emit   func(Fired[T])
	stable T
	latest T
	seq    uint64
	timer  *clock.Timer
	armed  bool
	closed bool
}

// New creates a Debouncer whose stable value starts at initial
func New[T comparable](initial T, delay time.Duration, clk clock.Clock, emit func(Fired[T])) *Debouncer[T] {
	if clk == nil {
		clk = clock.Real()
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{
		clock:  clk,
		delay:  delay,
		emit:   emit,
		stable: initial,
		latest: initial,
	}
}

// Set records a new input value and re-arms the timer, cancelling the
// previous one. Setting the value that is already the latest input is a
// no-op, as is any call after Close.
func (d *Debouncer[T]) Set(value T) {
	if d.closed || value == d.latest {
		return
	}
	d.latest = value
	d.stopTimer()

	d.seq++
	seq := d.seq
	emit := d.emit
	d.armed = true
	timer := d.clock.AfterFunc(d.delay, func() {
		emit(Fired[T]{Seq: seq, Value: value})
	})
	// A zero delay on a fake clock may already have delivered
	if d.armed && d.seq == seq {
		d.timer = timer
	}
}

// Deliver applies a Fired produced by this Debouncer. Fires from a
// superseded arm, or arriving after Close, are dropped. It reports whether
// the stable value changed.
func (d *Debouncer[T]) Deliver(f Fired[T]) bool {
	if d.closed || f.Seq != d.seq {
		return false
	}
	d.timer = nil
	d.armed = false
	if f.Value == d.stable {
		return false
	}
	d.stable = f.Value
	return true
}

// Value returns the stable value
func (d *Debouncer[T]) Value() T { return d.stable }

// Latest returns the most recent input value
func (d *Debouncer[T]) Latest() T { return d.latest }

// Pending reports whether a timer is armed and not yet delivered
func (d *Debouncer[T]) Pending() bool { return d.armed }

// Delay returns the quiet period
func (d *Debouncer[T]) Delay() time.Duration { return d.delay }

// Close stops any pending timer. Later Set and Deliver calls do nothing.
func (d *Debouncer[T]) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.stopTimer()
}

func (d *Debouncer[T]) stopTimer() {
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
