package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
)

func TestDiscordSendWithImage(t *testing.T) {
	var gotContent, gotUsername, gotFileType string
	var gotFile []byte
	ts, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotContent = r.FormValue("content")
		gotUsername = r.FormValue("username")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("file part: %v", err)
			return
		}
		defer file.Close()
		gotFileType = header.Header.Get("Content-Type")
		gotFile, _ = io.ReadAll(file)
	})

	ch := &Discord{URL: ts.URL}
	ev := testEvent()
	if err := ch.Send(context.Background(), ev); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotContent != ev.Message {
		t.Errorf("content: got %q, want %q", gotContent, ev.Message)
	}
	if gotUsername != "SmartCam" {
		t.Errorf("username: got %q, want SmartCam", gotUsername)
	}
	if gotFileType != "image/jpeg" {
		t.Errorf("file content type: got %q, want image/jpeg", gotFileType)
	}
	if !bytes.Equal(gotFile, ev.Snapshot) {
		t.Error("file bytes do not match the snapshot")
	}
}

func TestDiscordSendTextWithoutSnapshot(t *testing.T) {
	var gotBody map[string]string
	ts, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type: got %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
	})

	ch := &Discord{URL: ts.URL}
	ev := testEvent()
	ev.Snapshot = nil
	if err := ch.Send(context.Background(), ev); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotBody["content"] != ev.Message {
		t.Errorf("content: got %q, want %q", gotBody["content"], ev.Message)
	}
	if gotBody["username"] != "SmartCam" {
		t.Errorf("username: got %q, want SmartCam", gotBody["username"])
	}
}

func TestDiscordDisabledMakesNoRequest(t *testing.T) {
	_, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {})

	ch := &Discord{URL: ""}
	if ch.Enabled() {
		t.Error("channel with empty URL reports enabled")
	}
	if err := ch.Send(context.Background(), testEvent()); !errors.Is(err, ErrDisabled) {
		t.Fatalf("Send: got %v, want ErrDisabled", err)
	}
	if *calls != 0 {
		t.Errorf("disabled channel made %d requests", *calls)
	}
}

func TestDiscordFailsOnErrorStatus(t *testing.T) {
	ts, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	ch := &Discord{URL: ts.URL}
	if err := ch.Send(context.Background(), testEvent()); err == nil {
		t.Fatal("expected error on 404")
	}
}

func TestSnapshotFilenameFallsBack(t *testing.T) {
	ev := testEvent()
	if got := snapshotFilename(ev); got != "event_20260314_150926.jpg" {
		t.Errorf("filename: got %q", got)
	}
	ev.SnapshotPath = ""
	if got := snapshotFilename(ev); got != "snapshot.jpg" {
		t.Errorf("fallback filename: got %q", got)
	}
}
