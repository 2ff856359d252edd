// Package camera provides JPEG frame acquisition with source abstraction.
// The MJPEG implementation reads a multipart HTTP stream from a network
// camera. The replay implementation reads image files from a directory.
// The fake implementation allows testing without a camera.
package camera

import "time"

// Frame is a single JPEG-encoded frame read from a source.
type Frame struct {
	// Data contains the raw JPEG bytes.
	// Must not be modified after NextFrame returns (shared by reference).
	Data []byte

	// Time is when the frame was read by this host.
	Time time.Time

	// Seq is a monotonically increasing per-source sequence number,
	// starting at 1 for the first frame.
	Seq uint64
}

// Source produces frames one at a time.
type Source interface {
	// NextFrame blocks until the next frame is available.
	// Errors are per-frame and transient: the source stays usable and
	// recovers on a later call. A pending NextFrame is unblocked by Close.
	NextFrame() (*Frame, error)

	// Close releases the source's resources.
	Close() error
}
