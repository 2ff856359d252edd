package logic

import "time"

// minFPS is the floor applied to the configured sampling rate.
const minFPS = 0.1

// RateLimiter caps how often frames are admitted for motion analysis.
// It bounds per-frame sampling cost and is independent of the event
// cooldown, which bounds alerts.
type RateLimiter struct {
	minInterval time.Duration
	last        time.Time
}

// NewRateLimiter creates a limiter admitting at most maxFPS frames per
// second. Rates below 0.1 fps are clamped to 0.1.
func NewRateLimiter(maxFPS float64) *RateLimiter {
	if maxFPS < minFPS {
		maxFPS = minFPS
	}
	return &RateLimiter{
		minInterval: time.Duration(float64(time.Second) / maxFPS),
	}
}

// Admit reports whether a frame at now may be analyzed, recording the
// admission when it is. The first call always admits. A rejected frame
// is skipped entirely — it must not be offered to the debouncer as a
// negative sample.
func (r *RateLimiter) Admit(now time.Time) bool {
	if !r.last.IsZero() && now.Sub(r.last) < r.minInterval {
		return false
	}
	r.last = now
	return true
}

// Interval returns the minimum spacing between admitted frames.
func (r *RateLimiter) Interval() time.Duration {
	return r.minInterval
}
