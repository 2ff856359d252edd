package camera

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ReplaySource reads JPEG files from a directory in name order, wrapping
// around at the end. It stands in for a live camera in bench rigs and
// demos: point it at a directory of captured frames and the pipeline
// sees an endless stream.
type ReplaySource struct {
	files []string
	index int
	seq   uint64
}

// NewReplaySource lists the *.jpg and *.jpeg files under dir.
func NewReplaySource(dir string) (*ReplaySource, error) {
	var files []string
	for _, pattern := range []string{"*.jpg", "*.jpeg"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("list frames: %w", err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no frame files in %s", dir)
	}
	sort.Strings(files)
	return &ReplaySource{files: files}, nil
}

// NextFrame reads the next file in order. An unreadable file is skipped
// on the following call rather than retried forever.
func (s *ReplaySource) NextFrame() (*Frame, error) {
	path := s.files[s.index]
	s.index = (s.index + 1) % len(s.files)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame %s: %w", filepath.Base(path), err)
	}

	s.seq++
	return &Frame{Data: data, Time: time.Now(), Seq: s.seq}, nil
}

// Close is a no-op; the source holds no resources between frames.
func (s *ReplaySource) Close() error {
	return nil
}
