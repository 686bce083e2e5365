// Package debounce delays a changing value until it has been stable for a
// fixed window. It is driven by Bubble Tea ticks: every input issues a new
// tag, and only the tick carrying the latest tag may commit.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the settle window used for search input
const DefaultDelay = 300 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// SettledMsg is emitted when a debounce window elapses
type SettledMsg[T comparable] struct {
	ID    int
	Tag   int
	Value T
}

// Debouncer holds the latest input and the committed value.
// It is not safe for concurrent use; call it from Update only.
type Debouncer[T comparable] struct {
	id      int
	delay   time.Duration
	tag     int
	latest  T
	value   T
	pending bool
	stopped bool
}

// New creates a debouncer whose committed value starts at initial
func New[T comparable](delay time.Duration, initial T) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		id:     nextID(),
		delay:  delay,
		latest: initial,
		value:  initial,
	}
}

// ID returns the instance identifier carried by its messages
func (d *Debouncer[T]) ID() int { return d.id }

// Delay returns the settle window
func (d *Debouncer[T]) Delay() time.Duration { return d.delay }

// Value returns the committed value
func (d *Debouncer[T]) Value() T { return d.value }

// Latest returns the most recent input, committed or not
func (d *Debouncer[T]) Latest() T { return d.latest }

// Pending reports whether an input is waiting for its window to elapse
func (d *Debouncer[T]) Pending() bool { return d.pending }

// Input records v and restarts the window. It returns nil when v equals the
// previous input or the debouncer has been stopped.
func (d *Debouncer[T]) Input(v T) tea.Cmd {
	if d.stopped || v == d.latest {
		return nil
	}
	d.latest = v
	d.tag++
	d.pending = true

	id, tag := d.id, d.tag
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return SettledMsg[T]{ID: id, Tag: tag, Value: v}
	})
}

// Settle commits msg if it is the latest tick of this debouncer. The second
// return value is true only when the committed value actually changed.
func (d *Debouncer[T]) Settle(msg SettledMsg[T]) (T, bool) {
	if d.stopped || msg.ID != d.id || msg.Tag != d.tag {
		return d.value, false
	}
	d.pending = false
	if msg.Value == d.value {
		return d.value, false
	}
	d.value = msg.Value
	return d.value, true
}

// Stop discards any outstanding tick. Later inputs are ignored.
func (d *Debouncer[T]) Stop() {
	d.stopped = true
	d.pending = false
	d.tag++
}
