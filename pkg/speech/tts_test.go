package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSynthesizeEmptyInputFailsFast(t *testing.T) {
	s := NewSynthesizer("http://127.0.0.1:1", "key", "gpt-4o-mini-tts", "alloy")
	for _, input := range []string{"", "   \n"} {
		if _, err := s.Synthesize(context.Background(), input); err == nil {
			t.Errorf("expected validation error before any network call for %q", input)
		}
	}
}

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req speechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		if req.Model != "gpt-4o-mini-tts" || req.Voice != "alloy" || req.Input != "hello" {
			t.Errorf("unexpected request: %+v", req)
		}

		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	s := NewSynthesizer(srv.URL, "test-key", "gpt-4o-mini-tts", "alloy")
	audio, err := s.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("unexpected audio payload: %q", audio)
	}
}

func TestSynthesizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewSynthesizer(srv.URL, "key", "bad-model", "alloy")
	if _, err := s.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestSynthesizeToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "out.mp3")
	s := NewSynthesizer(srv.URL, "key", "m", "v")

	path, err := s.SynthesizeToFile(context.Background(), "hello", out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != "audio" {
		t.Errorf("unexpected file contents: %q", data)
	}
}
