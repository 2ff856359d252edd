// Package snapshot persists confirmed-event frames to disk.
// The fake implementation allows testing without touching the filesystem.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store saves event snapshots.
type Store interface {
	// Save writes the JPEG to stable storage and returns its path.
	Save(jpeg []byte, t time.Time) (string, error)
}

// Dir stores snapshots as files under a directory, one per event,
// named event_YYYYMMDD_HHMMSS.jpg after the event time.
type Dir struct {
	path string
}

// NewDir creates a store rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Save writes the JPEG under the store directory. The directory is
// (re)created on every save, so it survives being removed at runtime.
func (d *Dir) Save(jpeg []byte, t time.Time) (string, error) {
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	path := filepath.Join(d.path, fmt.Sprintf("event_%s.jpg", t.Format("20060102_150405")))
	if err := os.WriteFile(path, jpeg, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
