package notify

import "context"

// Sounder raises a local audible alarm. Implementations live in
// internal/alarm; this is the capability the dispatch path needs.
type Sounder interface {
	Sound() error
}

// Alarm adapts a Sounder into a channel so the local alarm rides the
// same dispatch path as the network alerts: fired once per accepted
// event, failures logged and never fatal.
type Alarm struct {
	sounder Sounder
}

// NewAlarm wraps the sounder. A nil sounder yields a disabled channel.
func NewAlarm(s Sounder) *Alarm {
	return &Alarm{sounder: s}
}

func (a *Alarm) Name() string { return "alarm" }

func (a *Alarm) Enabled() bool { return a.sounder != nil }

// Send sounds the alarm. The event content is irrelevant to a siren.
func (a *Alarm) Send(ctx context.Context, ev Event) error {
	if !a.Enabled() {
		return ErrDisabled
	}
	return a.sounder.Sound()
}
