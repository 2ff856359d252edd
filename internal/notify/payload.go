package notify

import (
	"encoding/json"
	"time"
)

// Payload is the JSON envelope published to the message buses.
type Payload struct {
	Event EventPayload `json:"event"`
}

// EventPayload contains the event details.
type EventPayload struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Snapshot  string `json:"snapshot,omitempty"`
}

// FormatPayload creates the bus JSON payload for an event. Only the
// snapshot path travels on the bus, never the pixel data.
func FormatPayload(ev Event) ([]byte, error) {
	payload := Payload{
		Event: EventPayload{
			ID:        ev.ID,
			Timestamp: ev.Time.UTC().Format(time.RFC3339),
			Message:   ev.Message,
			Snapshot:  ev.SnapshotPath,
		},
	}
	return json.Marshal(payload)
}
