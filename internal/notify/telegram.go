package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// telegramAPI is the production bot API base. Tests point Endpoint at a
// local server instead.
const telegramAPI = "https://api.telegram.org"

// Telegram delivers alerts through the Telegram bot API. With a
// snapshot it sends a photo with the message as caption; without one it
// sends a plain message. Both token and chat id are required.
type Telegram struct {
	Token    string
	ChatID   string
	Endpoint string
	Client   *http.Client
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Enabled() bool { return t.Token != "" && t.ChatID != "" }

func (t *Telegram) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return http.DefaultClient
}

func (t *Telegram) methodURL(method string) string {
	base := t.Endpoint
	if base == "" {
		base = telegramAPI
	}
	return fmt.Sprintf("%s/bot%s/%s", strings.TrimSuffix(base, "/"), t.Token, method)
}

// Send delivers the event via sendPhoto or sendMessage.
func (t *Telegram) Send(ctx context.Context, ev Event) error {
	if !t.Enabled() {
		return ErrDisabled
	}
	if ev.Snapshot != nil {
		return t.sendPhoto(ctx, ev)
	}
	return t.sendMessage(ctx, ev)
}

func (t *Telegram) sendMessage(ctx context.Context, ev Event) error {
	data := url.Values{}
	data.Set("chat_id", t.ChatID)
	data.Set("text", ev.Message)

	ctx, cancel := context.WithTimeout(ctx, textTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.methodURL("sendMessage"), strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return t.do(req)
}

func (t *Telegram) sendPhoto(ctx context.Context, ev Event) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("chat_id", t.ChatID); err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if err := form.WriteField("caption", ev.Message); err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	part, err := form.CreateFormFile("photo", snapshotFilename(ev))
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

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.methodURL("sendPhoto"), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return t.do(req)
}

func (t *Telegram) do(req *http.Request) error {
	resp, err := t.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram returned status %s", resp.Status)
	}
	return nil
}
