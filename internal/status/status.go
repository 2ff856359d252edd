// Package status provides a thread-safe status tracker for the
// smartcam daemon. The frame loop and the dispatcher write to it; HTTP
// handlers read point-in-time snapshots.
package status

import (
	"sync"
	"time"

	"github.com/varley/smartcam/internal/notify"
)

// ringCapacity is how many recent events the tracker retains.
const ringCapacity = 16

// Config contains daemon configuration for display.
type Config struct {
	Window   int
	Cooldown time.Duration
	MaxFPS   float64
	MinArea  float64
	Source   string
	SaveDir  string
	HTTPAddr string
}

// Counters tallies the pipeline's per-frame activity.
type Counters struct {
	FramesRead     uint64
	RateSkipped    uint64
	SourceErrors   uint64
	AnalyzerErrors uint64
	MotionFrames   uint64
	Suppressed     uint64 // confirmations refused by the cooldown gate
	Dispatched     uint64 // events that reached the dispatcher
}

// ChannelTally counts per-channel delivery outcomes.
type ChannelTally struct {
	Delivered int
	Failed    int
	Skipped   int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type with private copies of the maps and records —
// safe to use after the lock is released.
type Snapshot struct {
	StartTime time.Time
	Now       time.Time
	Config    Config
	Counters  Counters
	Channels  map[string]ChannelTally
	Events    []EventRecord // oldest first
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex. It implements
// notify.Observer, so dispatch outcomes land here from channel
// goroutines while the frame loop updates the counters.
type Tracker struct {
	mu       sync.RWMutex
	start    time.Time
	cfg      Config
	counters Counters
	channels map[string]ChannelTally
	ring     *eventRing
	lastJPEG []byte
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		start:    startTime,
		cfg:      cfg,
		channels: make(map[string]ChannelTally),
		ring:     newEventRing(ringCapacity),
	}
}

// FrameRead counts a successfully grabbed frame.
func (t *Tracker) FrameRead() {
	t.mu.Lock()
	t.counters.FramesRead++
	t.mu.Unlock()
}

// RateSkipped counts a tick rejected by the rate limiter.
func (t *Tracker) RateSkipped() {
	t.mu.Lock()
	t.counters.RateSkipped++
	t.mu.Unlock()
}

// SourceError counts a failed frame grab.
func (t *Tracker) SourceError() {
	t.mu.Lock()
	t.counters.SourceErrors++
	t.mu.Unlock()
}

// AnalyzerError counts a frame the analyzer could not judge.
func (t *Tracker) AnalyzerError() {
	t.mu.Lock()
	t.counters.AnalyzerErrors++
	t.mu.Unlock()
}

// MotionFrame counts a frame the analyzer flagged as moving.
func (t *Tracker) MotionFrame() {
	t.mu.Lock()
	t.counters.MotionFrames++
	t.mu.Unlock()
}

// Suppressed counts a confirmation the cooldown gate refused.
func (t *Tracker) Suppressed() {
	t.mu.Lock()
	t.counters.Suppressed++
	t.mu.Unlock()
}

// EventDispatched records a dispatched event and keeps its snapshot as
// the latest one for the web endpoint.
func (t *Tracker) EventDispatched(ev notify.Event) {
	t.mu.Lock()
	t.counters.Dispatched++
	if ev.Snapshot != nil {
		t.lastJPEG = ev.Snapshot
	}
	t.ring.push(&EventRecord{
		ID:           ev.ID,
		Time:         ev.Time,
		Message:      ev.Message,
		SnapshotPath: ev.SnapshotPath,
		Outcomes:     make(map[string]string),
	})
	t.mu.Unlock()
}

// ChannelOutcome tallies one channel's delivery attempt and attaches it
// to the event's record while it is still in the ring.
func (t *Tracker) ChannelOutcome(ev notify.Event, out notify.Outcome) {
	t.mu.Lock()
	tally := t.channels[out.Channel]
	switch out.Status {
	case notify.Delivered:
		tally.Delivered++
	case notify.Failed:
		tally.Failed++
	case notify.Skipped:
		tally.Skipped++
	}
	t.channels[out.Channel] = tally

	if rec := t.ring.find(ev.ID); rec != nil {
		rec.Outcomes[out.Channel] = string(out.Status)
	}
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := Snapshot{
		StartTime: t.start,
		Config:    t.cfg,
		Counters:  t.counters,
		Channels:  make(map[string]ChannelTally, len(t.channels)),
		Events:    t.ring.snapshot(),
	}
	for name, tally := range t.channels {
		s.Channels[name] = tally
	}
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

// LastJPEG returns the most recent event snapshot, or nil before the
// first event. The bytes are shared and must not be modified.
func (t *Tracker) LastJPEG() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastJPEG
}
