// Package alarm raises a local audible alarm on a confirmed event.
// The bell implementation writes the terminal bell character. The siren
// implementation pulses a GPIO output line and needs Linux hardware.
// The fake implementation allows testing without either.
package alarm

import (
	"fmt"
	"io"
	"os"
)

// Bell writes the terminal bell character, the minimal audible alarm on
// a machine with a console.
type Bell struct {
	// W receives the bell byte. Defaults to os.Stdout.
	W io.Writer
}

// Sound writes one bell character.
func (b *Bell) Sound() error {
	w := b.W
	if w == nil {
		w = os.Stdout
	}
	if _, err := w.Write([]byte{'\a'}); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
