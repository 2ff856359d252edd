package logic

import "time"

// CooldownGate suppresses confirmed events that arrive too soon after
// the last accepted one. It bounds the alert rate, independently of how
// often the debouncer confirms.
type CooldownGate struct {
	cooldown time.Duration
	last     time.Time
}

// NewCooldownGate creates a gate enforcing the given minimum interval
// between accepted events. A zero cooldown accepts every event.
func NewCooldownGate(cooldown time.Duration) *CooldownGate {
	return &CooldownGate{cooldown: cooldown}
}

// Allow reports whether an event at now falls outside the cooldown
// window. Allow records nothing: a caller that proceeds with the event
// must call Accept immediately after. The gate is owned by the single
// frame-processing goroutine; if confirmations ever come from more than
// one goroutine, Allow+Accept must be wrapped in one critical section.
func (g *CooldownGate) Allow(now time.Time) bool {
	if g.last.IsZero() {
		return true
	}
	return now.Sub(g.last) >= g.cooldown
}

// Accept records an accepted event at now.
func (g *CooldownGate) Accept(now time.Time) {
	g.last = now
}
