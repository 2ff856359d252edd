package camera

import (
	"errors"
	"time"
)

// FakeSource is a test double that returns scripted frames.
type FakeSource struct {
	// Frames contains scripted JPEG payloads to return.
	// Each call to NextFrame consumes the next one.
	Frames [][]byte

	// Now, if set, stamps frames instead of time.Now.
	Now func() time.Time

	// NextErr, if set, will be returned by NextFrame.
	NextErr error

	// Closed tracks if Close was called.
	Closed bool

	// index tracks current position in Frames
	index int
	seq   uint64
}

// NewFakeSource creates a FakeSource with the given frame payloads.
func NewFakeSource(frames ...[]byte) *FakeSource {
	return &FakeSource{Frames: frames}
}

// NextFrame returns the next scripted frame.
// If frames are exhausted, returns the last frame repeatedly.
func (f *FakeSource) NextFrame() (*Frame, error) {
	if f.NextErr != nil {
		return nil, f.NextErr
	}
	if len(f.Frames) == 0 {
		return nil, errors.New("no frames configured")
	}

	data := f.Frames[f.index]
	if f.index < len(f.Frames)-1 {
		f.index++
	}

	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	f.seq++
	return &Frame{Data: data, Time: now, Seq: f.seq}, nil
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the source to the first frame.
func (f *FakeSource) Reset() {
	f.index = 0
	f.seq = 0
	f.Closed = false
}
