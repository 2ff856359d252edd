package camera

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// MJPEGSource reads frames from a multipart/x-mixed-replace HTTP stream,
// the format served by most IP cameras and by mjpg-streamer.
type MJPEGSource struct {
	url    string
	client *http.Client

	// mu guards the connection state. It is not held across network
	// reads, so Close can always get in and fail a blocked NextFrame
	// by closing the body under it.
	mu     sync.Mutex
	body   io.ReadCloser
	parts  *multipart.Reader
	seq    uint64
	closed bool
}

// NewMJPEGSource connects to the stream at url. A camera that is down or
// misconfigured fails here rather than on the first frame.
func NewMJPEGSource(url string) (*MJPEGSource, error) {
	s := &MJPEGSource{
		url: url,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				ResponseHeaderTimeout: 5 * time.Second,
			},
		},
	}
	s.mu.Lock()
	err := s.connect()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// connect opens the stream and prepares the multipart reader.
// Callers must hold s.mu.
func (s *MJPEGSource) connect() error {
	resp, err := s.client.Get(s.url)
	if err != nil {
		return fmt.Errorf("connect to camera: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("connect to camera: status %s", resp.Status)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		resp.Body.Close()
		return fmt.Errorf("parse stream content type: %w", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		resp.Body.Close()
		return fmt.Errorf("not an MJPEG stream: content type %q", mediaType)
	}
	boundary := params["boundary"]
	if boundary == "" {
		resp.Body.Close()
		return fmt.Errorf("not an MJPEG stream: missing boundary")
	}

	s.body = resp.Body
	s.parts = multipart.NewReader(resp.Body, boundary)
	return nil
}

// NextFrame returns the next JPEG part from the stream.
// If the stream has dropped, it reconnects first; a reconnect failure is
// returned to the caller and retried on the next call.
func (s *MJPEGSource) NextFrame() (*Frame, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("camera source closed")
	}
	if s.parts == nil {
		if err := s.connect(); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	parts := s.parts
	s.mu.Unlock()

	part, err := parts.NextPart()
	if err != nil {
		s.drop(parts)
		return nil, fmt.Errorf("read stream part: %w", err)
	}
	data, err := io.ReadAll(part)
	if err != nil {
		s.drop(parts)
		return nil, fmt.Errorf("read frame body: %w", err)
	}

	s.mu.Lock()
	s.seq++
	frame := &Frame{Data: data, Time: time.Now(), Seq: s.seq}
	s.mu.Unlock()
	return frame, nil
}

// drop tears down the connection that failed so the next call reconnects.
// The guard against parts keeps a racing Close (which already nilled the
// fields) from being undone.
func (s *MJPEGSource) drop(parts *multipart.Reader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.parts != parts {
		return
	}
	if s.body != nil {
		s.body.Close()
	}
	s.body = nil
	s.parts = nil
}

// Close shuts the stream down. A NextFrame blocked on the network fails
// once the body is closed under it.
func (s *MJPEGSource) Close() error {
	s.mu.Lock()
	body := s.body
	s.body = nil
	s.parts = nil
	s.closed = true
	s.mu.Unlock()

	if body != nil {
		return body.Close()
	}
	return nil
}
