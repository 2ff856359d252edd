package snapshot

import (
	"fmt"
	"time"
)

// FakeStore is a test double that records saves in memory.
type FakeStore struct {
	// Saved accumulates the payloads passed to Save, in order.
	Saved [][]byte

	// Times accumulates the event times passed to Save, in order.
	Times []time.Time

	// SaveErr, if set, will be returned by Save.
	SaveErr error
}

// Save records the snapshot and returns a synthetic path.
func (f *FakeStore) Save(jpeg []byte, t time.Time) (string, error) {
	if f.SaveErr != nil {
		return "", f.SaveErr
	}
	f.Saved = append(f.Saved, jpeg)
	f.Times = append(f.Times, t)
	return fmt.Sprintf("fake/event_%s.jpg", t.Format("20060102_150405")), nil
}
