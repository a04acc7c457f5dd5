package transcribe

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI STT backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // default: client library default
	Model   string // default: "whisper-1"
}

// OpenAIEngine transcribes audio using OpenAI's Whisper API (or a compatible endpoint).
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

// NewOpenAIEngine creates an OpenAIEngine with defaults applied.
func NewOpenAIEngine(cfg OpenAIConfig) *OpenAIEngine {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (o *OpenAIEngine) Name() string { return "openai-" + o.model }

// Transcribe uploads req.AudioPath. Language detection needs the verbose
// response format, the plain JSON format carries text only.
func (o *OpenAIEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	oReq := openai.AudioRequest{
		Model:    o.model,
		FilePath: req.AudioPath,
		Language: req.Language,
		Format:   openai.AudioResponseFormatJSON,
	}
	if req.DetectLanguage {
		oReq.Format = openai.AudioResponseFormatVerboseJSON
	}

	resp, err := o.client.CreateTranscription(ctx, oReq)
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	res := &Result{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: seconds(resp.Duration),
	}
	for _, s := range resp.Segments {
		res.Segments = append(res.Segments, Segment{
			Start: seconds(s.Start),
			End:   seconds(s.End),
			Text:  s.Text,
		})
	}
	return res, nil
}
