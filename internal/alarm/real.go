//go:build linux

package alarm

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// pulseDuration is how long the siren line is held high per event.
const pulseDuration = 500 * time.Millisecond

// Siren drives a buzzer or relay on a GPIO output line.
type Siren struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewSiren requests the given BCM pin as an output, initially low.
func NewSiren(pin int) (*Siren, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request siren pin %d: %w", pin, err)
	}

	return &Siren{chip: chip, line: line}, nil
}

// Sound pulses the line high, blocking for the pulse duration. The
// dispatcher runs channels on their own goroutines, so the block never
// reaches the frame loop.
func (s *Siren) Sound() error {
	if err := s.line.SetValue(1); err != nil {
		return fmt.Errorf("raise siren pin: %w", err)
	}
	time.Sleep(pulseDuration)
	if err := s.line.SetValue(0); err != nil {
		return fmt.Errorf("lower siren pin: %w", err)
	}
	return nil
}

// Close lowers the line and releases GPIO resources. The pin is left
// as an input so nothing drives the buzzer after exit.
func (s *Siren) Close() error {
	var errs []error

	if s.line != nil {
		if err := s.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("lower siren pin: %w", err))
		}
		if err := s.line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure siren pin: %w", err))
		}
		if err := s.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close siren pin: %w", err))
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
