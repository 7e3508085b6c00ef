// Package viewport coalesces resize signals and applies the settled size to
// the canvas and the world's walls.
package viewport

import "time"

// Debouncer fires once after a burst of triggers has been quiet for its
// delay. It is polled from the frame loop rather than running a timer, so it
// fires on the goroutine that owns the world.
type Debouncer struct {
	delay time.Duration
	now   func() time.Time

	deadline time.Time
	pending  bool
}

// NewDebouncer returns a debouncer reading time from now, or time.Now when
// now is nil.
func NewDebouncer(delay time.Duration, now func() time.Time) *Debouncer {
	if now == nil {
		now = time.Now
	}
	return &Debouncer{delay: delay, now: now}
}

// Trigger cancels any pending fire and schedules a new one delay from now.
func (d *Debouncer) Trigger() {
	d.deadline = d.now().Add(d.delay)
	d.pending = true
}

// Poll reports true exactly once per burst, on the first call at or after
// the deadline.
func (d *Debouncer) Poll() bool {
	if !d.pending || d.now().Before(d.deadline) {
		return false
	}
	d.pending = false
	return true
}

func (d *Debouncer) Cancel() {
	d.pending = false
}

func (d *Debouncer) Pending() bool {
	return d.pending
}
