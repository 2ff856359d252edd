package vision

import (
	"errors"

	"github.com/varley/smartcam/internal/camera"
)

// FakeAnalyzer is a test double that returns scripted motion verdicts.
type FakeAnalyzer struct {
	// Verdicts contains scripted results to return.
	// Each call to Analyze consumes the next one.
	Verdicts []bool

	// AnalyzeErr, if set, will be returned by Analyze.
	AnalyzeErr error

	// Calls counts Analyze invocations, including failed ones.
	Calls int

	// index tracks current position in Verdicts
	index int
}

// NewFakeAnalyzer creates a FakeAnalyzer with the given verdicts.
func NewFakeAnalyzer(verdicts ...bool) *FakeAnalyzer {
	return &FakeAnalyzer{Verdicts: verdicts}
}

// Analyze returns the next scripted verdict.
// If verdicts are exhausted, returns the last one repeatedly.
func (f *FakeAnalyzer) Analyze(frame *camera.Frame) (bool, error) {
	f.Calls++
	if f.AnalyzeErr != nil {
		return false, f.AnalyzeErr
	}
	if len(f.Verdicts) == 0 {
		return false, errors.New("no verdicts configured")
	}

	v := f.Verdicts[f.index]
	if f.index < len(f.Verdicts)-1 {
		f.index++
	}
	return v, nil
}

// Reset rewinds the analyzer to the first verdict.
func (f *FakeAnalyzer) Reset() {
	f.index = 0
	f.Calls = 0
}
