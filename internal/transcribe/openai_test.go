package transcribe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenAIEngine_Transcribe(t *testing.T) {
	var gotFormat, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotFormat = r.FormValue("response_format")
		gotModel = r.FormValue("model")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"text":     "hello world",
			"language": "english",
			"duration": 2.5,
		})
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "talk.mp3")
	if err := os.WriteFile(audio, []byte("audio"), 0644); err != nil {
		t.Fatalf("failed to write audio: %v", err)
	}

	engine := NewOpenAIEngine(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	res, err := engine.Transcribe(context.Background(), Request{AudioPath: audio, DetectLanguage: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotFormat != "verbose_json" {
		t.Errorf("expected verbose_json when detecting language, got %q", gotFormat)
	}
	if gotModel != "whisper-1" {
		t.Errorf("expected default model whisper-1, got %q", gotModel)
	}
	if res.Text != "hello world" || res.Language != "english" {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Duration != 2500*time.Millisecond {
		t.Errorf("expected duration 2.5s, got %v", res.Duration)
	}
}

func TestOpenAIEngine_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "talk.mp3")
	if err := os.WriteFile(audio, []byte("audio"), 0644); err != nil {
		t.Fatalf("failed to write audio: %v", err)
	}

	engine := NewOpenAIEngine(OpenAIConfig{APIKey: "bad", BaseURL: srv.URL + "/v1"})
	if _, err := engine.Transcribe(context.Background(), Request{AudioPath: audio}); err == nil {
		t.Fatal("expected error for unauthorized response")
	}
}
