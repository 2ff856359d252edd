package status

import "time"

// EventRecord is the retained metadata for one dispatched event.
// Pixel data never lands here; the path points at the saved snapshot.
type EventRecord struct {
	ID           string
	Time         time.Time
	Message      string
	SnapshotPath string
	Outcomes     map[string]string // channel name → delivered/failed/skipped
}

// eventRing is a fixed-capacity FIFO of the most recent events; the
// oldest record is overwritten once the ring is full.
// Not safe for concurrent use — the Tracker synchronizes.
type eventRing struct {
	buf      []*EventRecord
	capacity int
	head     int // next write position
	count    int
}

func newEventRing(capacity int) *eventRing {
	return &eventRing{
		buf:      make([]*EventRecord, capacity),
		capacity: capacity,
	}
}

func (r *eventRing) push(rec *EventRecord) {
	r.buf[r.head] = rec
	r.head = (r.head + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	}
}

// find returns the retained record with the given event ID, or nil if
// it has already been overwritten.
func (r *eventRing) find(id string) *EventRecord {
	start := (r.head - r.count + r.capacity) % r.capacity
	for i := 0; i < r.count; i++ {
		if rec := r.buf[(start+i)%r.capacity]; rec.ID == id {
			return rec
		}
	}
	return nil
}

// snapshot returns deep copies of the retained records, oldest first.
func (r *eventRing) snapshot() []EventRecord {
	if r.count == 0 {
		return nil
	}

	result := make([]EventRecord, r.count)
	start := (r.head - r.count + r.capacity) % r.capacity
	for i := 0; i < r.count; i++ {
		rec := r.buf[(start+i)%r.capacity]
		copied := *rec
		copied.Outcomes = make(map[string]string, len(rec.Outcomes))
		for ch, status := range rec.Outcomes {
			copied.Outcomes[ch] = status
		}
		result[i] = copied
	}
	return result
}
