// Package logic contains the pure event-confirmation pipeline: the
// motion debounce window, the alert cooldown gate, and the sampling
// rate limiter. This package has NO external dependencies (no camera,
// HTTP, OS, or time.Sleep). Time is always injectable via time.Time
// parameters.
package logic

// Debouncer reduces a noisy per-frame motion signal into confirmed
// events by requiring a run of consecutive positive samples.
type Debouncer struct {
	window []bool
	size   int
}

// NewDebouncer creates a debouncer that confirms after size consecutive
// positive samples. A size below 1 is treated as 1.
func NewDebouncer(size int) *Debouncer {
	if size < 1 {
		size = 1
	}
	return &Debouncer{
		window: make([]bool, 0, size),
		size:   size,
	}
}

// Offer appends one motion sample and reports whether it completed a
// confirmed event. Confirmation requires a full window with every entry
// positive — not a majority vote. A single negative sample breaks the
// run until it falls out of the window again.
//
// On confirmation the window is emptied, so sustained motion does not
// re-confirm on every following frame; the next event needs a fresh run
// of size consecutive positives.
func (d *Debouncer) Offer(motion bool) bool {
	if len(d.window) == d.size {
		copy(d.window, d.window[1:])
		d.window = d.window[:d.size-1]
	}
	d.window = append(d.window, motion)

	if len(d.window) < d.size {
		return false
	}
	for _, m := range d.window {
		if !m {
			return false
		}
	}
	d.window = d.window[:0]
	return true
}

// Size returns the confirmation window capacity.
func (d *Debouncer) Size() int {
	return d.size
}
