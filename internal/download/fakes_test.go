package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/ytget/finch/internal/model"
	"github.com/ytget/finch/internal/transcribe"
)

// fakeFetcher writes a video file into the requested directory after
// replaying updates through the hook
type fakeFetcher struct {
	mu       sync.Mutex
	requests []FetchRequest
	updates  []FetchUpdate
	fileName string
	err      error
	block    bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, req FetchRequest, hook FetchHook) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}

	for _, u := range f.updates {
		hook(u)
	}
	if f.err != nil {
		return f.err
	}

	name := f.fileName
	if name == "" {
		name = "Some Talk.mp4"
	}
	return os.WriteFile(filepath.Join(filepath.Dir(req.OutputTemplate), name), []byte("video"), 0644)
}

// fakeExtractor writes an empty audio file next to the video
type fakeExtractor struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, videoPath string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, videoPath)
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	audioPath := model.AudioPathFor(videoPath)
	return audioPath, os.WriteFile(audioPath, nil, 0644)
}

// fakeEngine records the audio paths it was asked to transcribe
type fakeEngine struct {
	mu    sync.Mutex
	calls []transcribe.Request
	err   error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Transcribe(ctx context.Context, req transcribe.Request) (*transcribe.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, errors.New("audio file missing")
	}
	return &transcribe.Result{Text: "hello world"}, nil
}

func (f *fakeEngine) requests() []transcribe.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]transcribe.Request(nil), f.calls...)
}
