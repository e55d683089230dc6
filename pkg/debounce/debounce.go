// Package debounce delays a rapidly changing value until it has been stable
// for a configured interval.
package debounce

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidDelay is returned for negative delays.
var ErrInvalidDelay = errors.New("debounce delay must not be negative")

// Debouncer emits the latest pushed value once no newer value has arrived for the full delay.
// Each Push resets the timer and replaces the pending value (last-write-wins, no queuing).
// Safe for concurrent use.
type Debouncer[T any] struct {
	delay time.Duration
	emit  func(T)

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64 // Bumped on every Push/Cancel/Close; a timer only emits for its own generation
	closed bool
}

// New creates a debouncer calling emit with the settled value.
// A zero delay degenerates to synchronous passthrough.
func New[T any](delay time.Duration, emit func(T)) (*Debouncer[T], error) {
	if delay < 0 {
		return nil, ErrInvalidDelay
	}
	if emit == nil {
		return nil, errors.New("debounce emit func is required")
	}
	return &Debouncer[T]{delay: delay, emit: emit}, nil
}

// Delay returns the configured window.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Push records a new value and restarts the window.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.gen++
	d.stopLocked()

	if d.delay == 0 {
		d.mu.Unlock()
		d.emit(v)
		return
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen, v)
	})
	d.mu.Unlock()
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	// A newer Push, a Cancel or a Close happened after this timer was armed.
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
}

// Pending reports whether a value is waiting for its window to elapse.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the pending value, if any. The debouncer stays usable.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.stopLocked()
}

// Close cancels the pending value and turns further pushes into no-ops.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.closed = true
	d.stopLocked()
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
