// Package transcribe turns audio files into text through pluggable
// speech-to-text backends: a local whisper command line and the OpenAI API.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownBackend is returned by New for an unrecognized backend name
	ErrUnknownBackend = errors.New("unknown transcription backend")

	// ErrEmptyAudioPath is returned when a request carries no audio file
	ErrEmptyAudioPath = errors.New("audio path is empty")
)

// Backend names accepted by New
const (
	BackendWhisper = "whisper"
	BackendOpenAI  = "openai"
)

// Request holds the parameters for one transcription.
type Request struct {
	AudioPath string
	// Language forces the spoken language (ISO-639-1). Empty leaves the
	// decision to the model.
	Language string
	// DetectLanguage asks the backend to report the language it detected.
	DetectLanguage bool
}

// Segment is a timestamped portion of a transcript.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Result holds the transcription output.
type Result struct {
	Text     string
	Language string // empty unless the backend reported one
	Duration time.Duration
	Segments []Segment
}

// Engine is the interface for speech-to-text backends.
type Engine interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
	Name() string
}

// Config selects and configures a backend.
type Config struct {
	Backend string

	WhisperBin   string
	WhisperModel string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
}

// New creates the Engine named by cfg.Backend.
func New(cfg Config) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendWhisper:
		return NewWhisperEngine(WhisperConfig{
			Bin:   cfg.WhisperBin,
			Model: cfg.WhisperModel,
		}), nil
	case BackendOpenAI:
		if cfg.OpenAIKey == "" && cfg.OpenAIBaseURL == "" {
			return nil, fmt.Errorf("openai backend requires an API key or base URL")
		}
		return NewOpenAIEngine(OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

func validate(req Request) error {
	if strings.TrimSpace(req.AudioPath) == "" {
		return ErrEmptyAudioPath
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
