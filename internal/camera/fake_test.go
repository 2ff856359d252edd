package camera

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestFakeSourceNextFrame(t *testing.T) {
	f := NewFakeSource([]byte("one"), []byte("two"))

	frame, err := f.NextFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(frame.Data, []byte("one")) || frame.Seq != 1 {
		t.Errorf("frame 0: got %q seq %d", frame.Data, frame.Seq)
	}

	frame, err = f.NextFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(frame.Data, []byte("two")) || frame.Seq != 2 {
		t.Errorf("frame 1: got %q seq %d", frame.Data, frame.Seq)
	}

	// Third read repeats the last frame.
	frame, err = f.NextFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(frame.Data, []byte("two")) {
		t.Errorf("frame 2 (repeat): got %q", frame.Data)
	}
}

func TestFakeSourceNoFrames(t *testing.T) {
	f := NewFakeSource()
	if _, err := f.NextFrame(); err == nil {
		t.Error("expected error with no frames")
	}
}

func TestFakeSourceError(t *testing.T) {
	f := NewFakeSource([]byte("one"))
	f.NextErr = errors.New("simulated error")

	if _, err := f.NextFrame(); err == nil || err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeSourceStampsInjectedTime(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := NewFakeSource([]byte("one"))
	f.Now = func() time.Time { return fixed }

	frame, err := f.NextFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frame.Time.Equal(fixed) {
		t.Errorf("time: got %v, want %v", frame.Time, fixed)
	}
}

func TestFakeSourceCloseAndReset(t *testing.T) {
	f := NewFakeSource([]byte("one"), []byte("two"))
	f.NextFrame()

	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed {
		t.Error("should not be closed after Reset()")
	}
	frame, _ := f.NextFrame()
	if !bytes.Equal(frame.Data, []byte("one")) || frame.Seq != 1 {
		t.Errorf("after reset: got %q seq %d", frame.Data, frame.Seq)
	}
}
