package notify

import (
	"encoding/json"
	"testing"
)

func TestFormatPayload(t *testing.T) {
	data, err := FormatPayload(testEvent())
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.Event.ID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("id: got %q", p.Event.ID)
	}
	if p.Event.Message != "Motion detected at 2026-03-14 15:09:26" {
		t.Errorf("message: got %q", p.Event.Message)
	}
	if p.Event.Snapshot != "events/event_20260314_150926.jpg" {
		t.Errorf("snapshot: got %q", p.Event.Snapshot)
	}
	// The bus timestamp is UTC RFC3339 regardless of event locality.
	if len(p.Event.Timestamp) == 0 || p.Event.Timestamp[len(p.Event.Timestamp)-1] != 'Z' {
		t.Errorf("timestamp not UTC RFC3339: %q", p.Event.Timestamp)
	}
}

func TestFormatPayloadOmitsEmptySnapshot(t *testing.T) {
	ev := testEvent()
	ev.SnapshotPath = ""
	data, err := FormatPayload(ev)
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["event"]["snapshot"]; ok {
		t.Error("empty snapshot path still serialized")
	}
}
