package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ytget/finch/internal/download"
	"github.com/ytget/finch/internal/platform"
	"github.com/ytget/finch/internal/transcribe"
)

// Environment keys
const (
	KeyEnvFile          = "FINCH_ENV"
	KeyRootDir          = "FINCH_ROOT_DIR"
	KeyMediaDir         = "FINCH_MEDIA_DIR"
	KeyDirNameLength    = "FINCH_DIR_NAME_LENGTH"
	KeyFormat           = "FINCH_FORMAT"
	KeyOutputTemplate   = "FINCH_OUTPUT_TEMPLATE"
	KeyPlaylistTimeout  = "FINCH_PLAYLIST_TIMEOUT"
	KeyProgressInterval = "FINCH_PROGRESS_INTERVAL"
	KeyFFmpegBin        = "FINCH_FFMPEG_BIN"
	KeyFFprobeBin       = "FINCH_FFPROBE_BIN"
	KeyBackend          = "FINCH_TRANSCRIBE_BACKEND"
	KeyWhisperBin       = "FINCH_WHISPER_BIN"
	KeyWhisperModel     = "FINCH_WHISPER_MODEL"
	KeyOpenAIKey        = "OPENAI_API_KEY"
	KeyOpenAIBaseURL    = "OPENAI_BASE_URL"
	KeyOpenAIModel      = "FINCH_OPENAI_MODEL"
	DefaultLocalEnvFile = ".env"
)

// Default values
const (
	DefaultMediaDir      = download.DefaultMediaFolder
	DefaultDirNameLength = download.DefaultDirNameLength
	DefaultBackend       = transcribe.BackendWhisper
	DefaultWhisperModel  = transcribe.DefaultWhisperModel
	MinDirNameLength     = 4
	MaxDirNameLength     = 52
)

// LoadEnv loads the file named by FINCH_ENV and then ./.env into the process
// environment. Missing files are skipped; variables already set win.
func LoadEnv() error {
	var paths []string
	if p := strings.TrimSpace(os.Getenv(KeyEnvFile)); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, DefaultLocalEnvFile)

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Settings reads application configuration from the environment
type Settings struct {
	lookup func(string) (string, bool)
}

// NewSettings creates settings backed by the process environment
func NewSettings() *Settings {
	return &Settings{lookup: os.LookupEnv}
}

func (s *Settings) get(key string) string {
	v, _ := s.lookup(key)
	return strings.TrimSpace(v)
}

func (s *Settings) getInt(key string, fallback int) int {
	v := s.get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Settings) getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s.get(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetRootDir returns the directory holding the media folder, empty for the default
func (s *Settings) GetRootDir() string {
	return s.get(KeyRootDir)
}

// GetMediaDir returns the media folder name
func (s *Settings) GetMediaDir() string {
	if dir := s.get(KeyMediaDir); dir != "" {
		return dir
	}
	return DefaultMediaDir
}

// GetDirNameLength returns the length of random target directory names,
// clamped so names stay letters drawn without repetition
func (s *Settings) GetDirNameLength() int {
	n := s.getInt(KeyDirNameLength, DefaultDirNameLength)
	if n < MinDirNameLength {
		n = MinDirNameLength
	}
	if n > MaxDirNameLength {
		n = MaxDirNameLength
	}
	return n
}

// GetFormat returns the yt-dlp format selector
func (s *Settings) GetFormat() string {
	if f := s.get(KeyFormat); f != "" {
		return f
	}
	return download.DefaultFormat
}

// GetOutputTemplate returns the file name template
func (s *Settings) GetOutputTemplate() string {
	if t := s.get(KeyOutputTemplate); t != "" {
		return t
	}
	return download.DefaultOutputTemplate
}

// GetPlaylistTimeout returns the time allowed for listing a playlist
func (s *Settings) GetPlaylistTimeout() time.Duration {
	return s.getDuration(KeyPlaylistTimeout, platform.DefaultParseTimeout)
}

// GetProgressInterval returns how often download progress is sampled
func (s *Settings) GetProgressInterval() time.Duration {
	return s.getDuration(KeyProgressInterval, download.DefaultProgressInterval)
}

// GetFFmpegBinaries returns ffmpeg and ffprobe overrides, empty for PATH lookup
func (s *Settings) GetFFmpegBinaries() (string, string) {
	return s.get(KeyFFmpegBin), s.get(KeyFFprobeBin)
}

// GetTranscribeConfig returns the transcription backend configuration
func (s *Settings) GetTranscribeConfig() transcribe.Config {
	backend := strings.ToLower(s.get(KeyBackend))
	if backend == "" {
		backend = DefaultBackend
	}
	model := s.get(KeyWhisperModel)
	if model == "" {
		model = DefaultWhisperModel
	}
	return transcribe.Config{
		Backend:       backend,
		WhisperBin:    s.get(KeyWhisperBin),
		WhisperModel:  model,
		OpenAIKey:     s.get(KeyOpenAIKey),
		OpenAIBaseURL: s.get(KeyOpenAIBaseURL),
		OpenAIModel:   s.get(KeyOpenAIModel),
	}
}

// GetBackendOptions returns the available transcription backends
func (s *Settings) GetBackendOptions() []string {
	return []string{transcribe.BackendWhisper, transcribe.BackendOpenAI}
}
