package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ytget/finch/internal/config"
	"github.com/ytget/finch/internal/transcribe"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// SmokeModel is the whisper model loaded by the standalone check
const SmokeModel = "medium"

// main transcribes a fixed local audio file, independent of any download.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	logger.Info("finch smoke check starting", "version", version)

	if err := config.LoadEnv(); err != nil {
		logger.Error("failed to load env file", "error", err)
		os.Exit(1)
	}

	cfg := config.NewSettings().GetTranscribeConfig()
	cfg.WhisperModel = SmokeModel

	engine, err := transcribe.New(cfg)
	if err != nil {
		logger.Error("failed to create transcription engine", "error", err)
		os.Exit(1)
	}

	if err := transcribe.RunSmoke(context.Background(), os.Stdout, engine, transcribe.DefaultSmokeAudio); err != nil {
		fmt.Fprintf(os.Stderr, "transcription failed: %v\n", err)
		os.Exit(1)
	}
}
