// Package vision decides whether a frame shows motion.
// The diff implementation compares consecutive frames without any
// external CV dependency. The fake implementation allows scripting
// verdicts in tests.
package vision

import "github.com/varley/smartcam/internal/camera"

// Analyzer inspects frames for motion.
type Analyzer interface {
	// Analyze reports whether the frame shows motion relative to the
	// frames seen before it. The first frame never does.
	Analyze(frame *camera.Frame) (bool, error)
}
