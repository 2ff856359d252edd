// Package notify fans confirmed motion events out to alert channels.
// Channels are independent: each attempts delivery on its own, with its
// own timeout, and a failure in one never affects another or the
// frame-processing loop.
package notify

import (
	"context"
	"errors"
	"time"
)

// Timeouts for channel delivery. Attaching an image costs an upload,
// so it gets twice the budget of a plain POST.
const (
	textTimeout  = 5 * time.Second
	imageTimeout = 10 * time.Second
)

// ErrDisabled is returned by Send when the channel has no configuration
// (empty URL or missing credentials). It marks the channel as skipped,
// which is distinct from a delivery failure.
var ErrDisabled = errors.New("channel disabled")

// Event is one confirmed motion event, ready for delivery. It is
// read-only after construction and shared across channel goroutines.
type Event struct {
	ID           string
	Time         time.Time
	Message      string
	Snapshot     []byte // JPEG bytes, nil if no snapshot is available
	SnapshotPath string // where the snapshot was persisted, "" on save failure
}

// Channel is one alert delivery target.
type Channel interface {
	// Name identifies the channel in logs and status reports.
	Name() string

	// Enabled reports whether the channel has the configuration it
	// needs. Determined once at construction; channels hold no other
	// state.
	Enabled() bool

	// Send delivers the event. A disabled channel returns ErrDisabled
	// without any network activity. Send must honor ctx cancellation
	// and bound its own work with the package timeouts.
	Send(ctx context.Context, ev Event) error
}

// OutcomeStatus classifies one channel's delivery attempt.
type OutcomeStatus string

const (
	Delivered OutcomeStatus = "delivered"
	Failed    OutcomeStatus = "failed"
	Skipped   OutcomeStatus = "skipped"
)

// Outcome is the result of one channel's attempt at one event.
type Outcome struct {
	Channel string
	Status  OutcomeStatus
	Err     error // set only when Status is Failed
}

// Observer receives dispatch lifecycle callbacks. EventDispatched is
// called from the dispatching goroutine before fan-out; ChannelOutcome
// arrives from per-channel goroutines, so implementations must be safe
// for concurrent use. Observers are for observability only — they must
// not feed back into the detection pipeline.
type Observer interface {
	EventDispatched(ev Event)
	ChannelOutcome(ev Event, out Outcome)
}

// NopObserver discards all callbacks.
type NopObserver struct{}

func (NopObserver) EventDispatched(Event)         {}
func (NopObserver) ChannelOutcome(Event, Outcome) {}
