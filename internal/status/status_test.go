package status

import (
	"fmt"
	"testing"
	"time"

	"github.com/varley/smartcam/internal/notify"
)

func testConfig() Config {
	return Config{
		Window:   5,
		Cooldown: 20 * time.Second,
		MaxFPS:   8,
		MinArea:  0.01,
		Source:   "http://camera.local:8080/video",
		SaveDir:  "events",
		HTTPAddr: ":8080",
	}
}

func testNotifyEvent(id string) notify.Event {
	return notify.Event{
		ID:           id,
		Time:         time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Message:      "Motion detected at 2026-03-14 15:09:26",
		Snapshot:     []byte{0xff, 0xd8},
		SnapshotPath: "events/event_20260314_150926.jpg",
	}
}

func TestCountersAccumulate(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	tr.FrameRead()
	tr.FrameRead()
	tr.RateSkipped()
	tr.SourceError()
	tr.AnalyzerError()
	tr.MotionFrame()
	tr.Suppressed()

	c := tr.Snapshot().Counters
	if c.FramesRead != 2 {
		t.Errorf("FramesRead: got %d, want 2", c.FramesRead)
	}
	if c.RateSkipped != 1 {
		t.Errorf("RateSkipped: got %d, want 1", c.RateSkipped)
	}
	if c.SourceErrors != 1 {
		t.Errorf("SourceErrors: got %d, want 1", c.SourceErrors)
	}
	if c.AnalyzerErrors != 1 {
		t.Errorf("AnalyzerErrors: got %d, want 1", c.AnalyzerErrors)
	}
	if c.MotionFrames != 1 {
		t.Errorf("MotionFrames: got %d, want 1", c.MotionFrames)
	}
	if c.Suppressed != 1 {
		t.Errorf("Suppressed: got %d, want 1", c.Suppressed)
	}
}

func TestEventDispatchedRecordsEvent(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	ev := testNotifyEvent("ev-1")

	tr.EventDispatched(ev)

	snap := tr.Snapshot()
	if snap.Counters.Dispatched != 1 {
		t.Errorf("Dispatched: got %d, want 1", snap.Counters.Dispatched)
	}
	if len(snap.Events) != 1 {
		t.Fatalf("events: got %d, want 1", len(snap.Events))
	}
	rec := snap.Events[0]
	if rec.ID != "ev-1" || rec.Message != ev.Message || rec.SnapshotPath != ev.SnapshotPath {
		t.Errorf("record: got %+v", rec)
	}
	if tr.LastJPEG() == nil {
		t.Error("LastJPEG empty after dispatch")
	}
}

func TestChannelOutcomesTallyAndAttach(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	ev := testNotifyEvent("ev-1")
	tr.EventDispatched(ev)

	tr.ChannelOutcome(ev, notify.Outcome{Channel: "webhook", Status: notify.Delivered})
	tr.ChannelOutcome(ev, notify.Outcome{Channel: "discord", Status: notify.Failed})
	tr.ChannelOutcome(ev, notify.Outcome{Channel: "telegram", Status: notify.Skipped})
	tr.ChannelOutcome(ev, notify.Outcome{Channel: "webhook", Status: notify.Delivered})

	snap := tr.Snapshot()
	if got := snap.Channels["webhook"].Delivered; got != 2 {
		t.Errorf("webhook delivered: got %d, want 2", got)
	}
	if got := snap.Channels["discord"].Failed; got != 1 {
		t.Errorf("discord failed: got %d, want 1", got)
	}
	if got := snap.Channels["telegram"].Skipped; got != 1 {
		t.Errorf("telegram skipped: got %d, want 1", got)
	}

	outcomes := snap.Events[0].Outcomes
	if outcomes["webhook"] != "delivered" || outcomes["discord"] != "failed" || outcomes["telegram"] != "skipped" {
		t.Errorf("event outcomes: got %v", outcomes)
	}
}

func TestOutcomeForEvictedEventIsDropped(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	first := testNotifyEvent("ev-0")
	tr.EventDispatched(first)
	for i := 1; i <= ringCapacity; i++ {
		tr.EventDispatched(testNotifyEvent(fmt.Sprintf("ev-%d", i)))
	}

	// ev-0 has been pushed out; its late outcome must not panic or
	// attach to a survivor.
	tr.ChannelOutcome(first, notify.Outcome{Channel: "webhook", Status: notify.Delivered})

	snap := tr.Snapshot()
	if len(snap.Events) != ringCapacity {
		t.Fatalf("events: got %d, want %d", len(snap.Events), ringCapacity)
	}
	if snap.Events[0].ID != "ev-1" {
		t.Errorf("oldest retained: got %s, want ev-1", snap.Events[0].ID)
	}
	for _, rec := range snap.Events {
		if len(rec.Outcomes) != 0 {
			t.Errorf("event %s stole the evicted outcome: %v", rec.ID, rec.Outcomes)
		}
	}
	// The channel tally still counts the delivery.
	if got := snap.Channels["webhook"].Delivered; got != 1 {
		t.Errorf("webhook delivered: got %d, want 1", got)
	}
}

func TestSnapshotIsDetachedCopy(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	ev := testNotifyEvent("ev-1")
	tr.EventDispatched(ev)

	snap := tr.Snapshot()
	snap.Events[0].Outcomes["webhook"] = "tampered"
	snap.Channels["webhook"] = ChannelTally{Delivered: 99}

	fresh := tr.Snapshot()
	if len(fresh.Events[0].Outcomes) != 0 {
		t.Error("mutating a snapshot reached the tracker's records")
	}
	if fresh.Channels["webhook"].Delivered != 0 {
		t.Error("mutating a snapshot reached the tracker's tallies")
	}
}

func TestUptime(t *testing.T) {
	start := time.Now().Add(-90 * time.Second)
	tr := NewTracker(start, testConfig())
	up := tr.Snapshot().Uptime()
	if up < 90*time.Second || up > 95*time.Second {
		t.Errorf("uptime: got %v, want about 90s", up)
	}
}
