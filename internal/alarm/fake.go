package alarm

import "sync"

// Fake is a test double that counts alarm activations. Safe for
// concurrent use — sounds arrive from dispatch goroutines.
type Fake struct {
	// SoundErr, if set, will be returned by Sound.
	SoundErr error

	mu     sync.Mutex
	sounds int
}

// Sound records the activation.
func (f *Fake) Sound() error {
	f.mu.Lock()
	f.sounds++
	f.mu.Unlock()
	return f.SoundErr
}

// Sounds returns how many times the alarm fired.
func (f *Fake) Sounds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sounds
}

// Reset clears the count.
func (f *Fake) Reset() {
	f.mu.Lock()
	f.sounds = 0
	f.mu.Unlock()
}
