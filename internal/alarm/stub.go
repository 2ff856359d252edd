//go:build !linux

package alarm

import "errors"

// Siren is not available on non-Linux platforms.
type Siren struct{}

// NewSiren returns an error on non-Linux platforms.
func NewSiren(pin int) (*Siren, error) {
	return nil, errors.New("alarm: gpio siren not supported on this platform (requires Linux)")
}

// Sound is not implemented on non-Linux platforms.
func (s *Siren) Sound() error {
	return errors.New("alarm: gpio siren not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *Siren) Close() error {
	return nil
}
