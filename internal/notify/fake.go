package notify

import (
	"context"
	"sync"
)

// FakeChannel records sends for test assertions. Safe for concurrent
// use — the dispatcher calls Send from per-channel goroutines.
type FakeChannel struct {
	// ChanName is returned by Name. Defaults to "fake".
	ChanName string

	// Disabled makes Send return ErrDisabled without recording.
	Disabled bool

	// SendErr, if set, will be returned by Send. The event is still
	// recorded, so tests can assert the attempt happened.
	SendErr error

	mu     sync.Mutex
	events []Event
}

// NewFakeChannel creates an enabled FakeChannel with the given name.
func NewFakeChannel(name string) *FakeChannel {
	return &FakeChannel{ChanName: name}
}

func (f *FakeChannel) Name() string {
	if f.ChanName == "" {
		return "fake"
	}
	return f.ChanName
}

func (f *FakeChannel) Enabled() bool { return !f.Disabled }

// Send records the event.
func (f *FakeChannel) Send(ctx context.Context, ev Event) error {
	if f.Disabled {
		return ErrDisabled
	}
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	return f.SendErr
}

// Sent returns a copy of the recorded events.
func (f *FakeChannel) Sent() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Reset clears recorded events.
func (f *FakeChannel) Reset() {
	f.mu.Lock()
	f.events = nil
	f.mu.Unlock()
}
