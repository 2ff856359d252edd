package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestTelegramSendPhoto(t *testing.T) {
	var gotPath string
	var gotChatID, gotCaption string
	var gotPhoto []byte
	var gotFilename string
	ts, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotChatID = r.FormValue("chat_id")
		gotCaption = r.FormValue("caption")
		file, header, err := r.FormFile("photo")
		if err != nil {
			t.Errorf("photo part: %v", err)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotPhoto, _ = io.ReadAll(file)
	})

	ch := &Telegram{Token: "123:abc", ChatID: "42", Endpoint: ts.URL}
	ev := testEvent()
	if err := ch.Send(context.Background(), ev); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/bot123:abc/sendPhoto" {
		t.Errorf("path: got %q, want /bot123:abc/sendPhoto", gotPath)
	}
	if gotChatID != "42" {
		t.Errorf("chat_id: got %q, want 42", gotChatID)
	}
	if gotCaption != ev.Message {
		t.Errorf("caption: got %q, want %q", gotCaption, ev.Message)
	}
	if !bytes.Equal(gotPhoto, ev.Snapshot) {
		t.Error("photo bytes do not match the snapshot")
	}
	if gotFilename != "event_20260314_150926.jpg" {
		t.Errorf("filename: got %q", gotFilename)
	}
}

func TestTelegramSendMessageWithoutSnapshot(t *testing.T) {
	var gotPath, gotContentType string
	var gotChatID, gotText string
	ts, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		gotChatID = r.FormValue("chat_id")
		gotText = r.FormValue("text")
	})

	ch := &Telegram{Token: "123:abc", ChatID: "42", Endpoint: ts.URL}
	ev := testEvent()
	ev.Snapshot = nil
	if err := ch.Send(context.Background(), ev); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path: got %q, want /bot123:abc/sendMessage", gotPath)
	}
	if !strings.HasPrefix(gotContentType, "application/x-www-form-urlencoded") {
		t.Errorf("Content-Type: got %q", gotContentType)
	}
	if gotChatID != "42" {
		t.Errorf("chat_id: got %q, want 42", gotChatID)
	}
	if gotText != ev.Message {
		t.Errorf("text: got %q, want %q", gotText, ev.Message)
	}
}

func TestTelegramDisabledWithoutCredentials(t *testing.T) {
	_, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {})

	for _, ch := range []*Telegram{
		{Token: "", ChatID: "42"},
		{Token: "123:abc", ChatID: ""},
		{},
	} {
		if ch.Enabled() {
			t.Errorf("Telegram{token=%q chat=%q} reports enabled", ch.Token, ch.ChatID)
		}
		if err := ch.Send(context.Background(), testEvent()); !errors.Is(err, ErrDisabled) {
			t.Errorf("Send: got %v, want ErrDisabled", err)
		}
	}
	if *calls != 0 {
		t.Errorf("disabled channel made %d requests", *calls)
	}
}

func TestTelegramFailsOnErrorStatus(t *testing.T) {
	ts, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	ch := &Telegram{Token: "123:abc", ChatID: "42", Endpoint: ts.URL}
	if err := ch.Send(context.Background(), testEvent()); err == nil {
		t.Fatal("expected error on 400")
	}
}
