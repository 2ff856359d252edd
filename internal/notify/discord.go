package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
)

// displayName is the sender name shown by webhook consumers that
// support one (Discord).
const displayName = "SmartCam"

// Discord posts alerts to a Discord-style webhook. With a snapshot it
// uploads the image as a multipart file alongside the message; without
// one it falls back to a plain JSON post.
type Discord struct {
	URL    string
	Client *http.Client
}

func (d *Discord) Name() string { return "discord" }

func (d *Discord) Enabled() bool { return d.URL != "" }

func (d *Discord) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

// Send posts the event to the webhook.
func (d *Discord) Send(ctx context.Context, ev Event) error {
	if !d.Enabled() {
		return ErrDisabled
	}
	if ev.Snapshot != nil {
		return d.sendWithImage(ctx, ev)
	}
	return d.sendText(ctx, ev)
}

func (d *Discord) sendText(ctx context.Context, ev Event) error {
	body, err := json.Marshal(map[string]string{
		"content":  ev.Message,
		"username": displayName,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, textTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return d.do(req)
}

func (d *Discord) sendWithImage(ctx context.Context, ev Event) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("content", ev.Message); err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if err := form.WriteField("username", displayName); err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	part, err := form.CreatePart(imagePartHeader("file", snapshotFilename(ev)))
	if err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(ev.Snapshot); err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("build form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return d.do(req)
}

func (d *Discord) do(req *http.Request) error {
	resp, err := d.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord returned status %s", resp.Status)
	}
	return nil
}

// imagePartHeader builds a multipart file header carrying the JPEG
// content type, which CreateFormFile would set to octet-stream.
func imagePartHeader(field, filename string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", "image/jpeg")
	return h
}

// snapshotFilename names the attached image after the persisted file
// when one exists.
func snapshotFilename(ev Event) string {
	if ev.SnapshotPath != "" {
		return filepath.Base(ev.SnapshotPath)
	}
	return "snapshot.jpg"
}
