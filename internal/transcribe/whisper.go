package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Whisper command line defaults
const (
	DefaultWhisperBin   = "whisper"
	DefaultWhisperModel = "small"
)

// WhisperConfig holds configuration for the local whisper CLI backend.
type WhisperConfig struct {
	Bin   string // default: "whisper"
	Model string // default: "small"
}

// WhisperEngine runs the openai-whisper command line and reads its JSON output.
type WhisperEngine struct {
	cfg WhisperConfig
}

// NewWhisperEngine creates a WhisperEngine with defaults applied.
func NewWhisperEngine(cfg WhisperConfig) *WhisperEngine {
	if cfg.Bin == "" {
		cfg.Bin = DefaultWhisperBin
	}
	if cfg.Model == "" {
		cfg.Model = DefaultWhisperModel
	}
	return &WhisperEngine{cfg: cfg}
}

func (w *WhisperEngine) Name() string { return "whisper-" + w.cfg.Model }

type whisperOut struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs whisper on req.AudioPath. The CLI always reports the
// detected language, so DetectLanguage needs no extra work here.
func (w *WhisperEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	outDir, err := os.MkdirTemp("", "finch-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	cmd := exec.CommandContext(ctx, w.cfg.Bin, w.buildArgs(req, outDir)...)
	if _, err := cmd.Output(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("whisper failed: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("run whisper: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(req.AudioPath), filepath.Ext(req.AudioPath))
	data, err := os.ReadFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	return parseWhisperOutput(data)
}

func (w *WhisperEngine) buildArgs(req Request, outDir string) []string {
	args := []string{
		req.AudioPath,
		"--model", w.cfg.Model,
		"--task", "transcribe",
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", "False",
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}
	return args
}

func parseWhisperOutput(data []byte) (*Result, error) {
	var parsed whisperOut
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	res := &Result{
		Text:     strings.TrimSpace(parsed.Text),
		Language: parsed.Language,
	}
	for _, s := range parsed.Segments {
		res.Segments = append(res.Segments, Segment{
			Start: seconds(s.Start),
			End:   seconds(s.End),
			Text:  strings.TrimSpace(s.Text),
		})
	}
	if n := len(res.Segments); n > 0 {
		res.Duration = res.Segments[n-1].End
	}
	return res, nil
}
