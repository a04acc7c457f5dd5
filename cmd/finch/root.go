package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ytget/finch/internal/audio"
	"github.com/ytget/finch/internal/config"
	"github.com/ytget/finch/internal/download"
	"github.com/ytget/finch/internal/model"
	"github.com/ytget/finch/internal/platform"
	"github.com/ytget/finch/internal/transcribe"
)

// DefaultURL is downloaded when no URL argument is given
const DefaultURL = "https://www.youtube.com/watch?v=DC2p3kFjcK0"

type rootOptions struct {
	verbose bool
	backend string
	model   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "finch [URL]",
		Short:   "Download a video, extract its audio and transcribe it",
		Version: version,
		Example: `  finch "https://www.youtube.com/watch?v=DC2p3kFjcK0"
  finch "https://www.youtube.com/playlist?list=PLAYLIST_ID"
  FINCH_TRANSCRIBE_BACKEND=openai finch https://youtu.be/DC2p3kFjcK0`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := DefaultURL
			if len(args) == 1 {
				url = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			factory, err := newFactory(settings, opts, logger)
			if err != nil {
				return err
			}

			parser := platform.NewPlaylistParser()
			parser.SetTimeout(settings.GetPlaylistTimeout())

			urls, err := expandURL(ctx, parser, url, logger)
			if err != nil {
				return err
			}

			return run(ctx, cmd.OutOrStdout(), factory, urls)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "Transcription backend: whisper or openai (default from FINCH_TRANSCRIBE_BACKEND)")
	cmd.PersistentFlags().StringVar(&opts.model, "model", "", "Whisper model name (default from FINCH_WHISPER_MODEL)")

	cmd.AddCommand(newTranscribeCmd(opts))
	return cmd
}

func newTranscribeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe [AUDIO]",
		Short: "Transcribe a local audio file and report its detected language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := transcribe.DefaultSmokeAudio
			if len(args) == 1 {
				path = args[0]
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			engine, err := newEngine(settings, opts)
			if err != nil {
				return err
			}
			return transcribe.RunSmoke(cmd.Context(), cmd.OutOrStdout(), engine, path)
		},
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadSettings() (*config.Settings, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return config.NewSettings(), nil
}

func newEngine(settings *config.Settings, opts *rootOptions) (transcribe.Engine, error) {
	cfg := settings.GetTranscribeConfig()
	if opts.backend != "" {
		if !slices.Contains(settings.GetBackendOptions(), opts.backend) {
			return nil, fmt.Errorf("%w: %s (choose one of %s)", transcribe.ErrUnknownBackend,
				opts.backend, strings.Join(settings.GetBackendOptions(), ", "))
		}
		cfg.Backend = opts.backend
	}
	if opts.model != "" {
		cfg.WhisperModel = opts.model
	}
	return transcribe.New(cfg)
}

func newFactory(settings *config.Settings, opts *rootOptions, logger *slog.Logger) (*download.Factory, error) {
	engine, err := newEngine(settings, opts)
	if err != nil {
		return nil, err
	}

	extractor := audio.NewService(logger)
	extractor.SetBinaries(settings.GetFFmpegBinaries())
	extractor.SetProgressCallback(func(path string, fraction float64) {
		logger.Debug("converting audio", "path", path, "percent", fmt.Sprintf("%.0f", fraction*100))
	})

	fetcher := download.NewYTDLPFetcher(logger)
	fetcher.SetProgressInterval(settings.GetProgressInterval())

	return download.NewFactory(download.Options{
		RootDir:        settings.GetRootDir(),
		MediaFolder:    settings.GetMediaDir(),
		DirNameLength:  settings.GetDirNameLength(),
		Format:         settings.GetFormat(),
		OutputTemplate: settings.GetOutputTemplate(),
		Fetcher:        fetcher,
		Extractor:      extractor,
		Engine:         engine,
		Logger:         logger,
	}), nil
}

// PlaylistLister lists the entries of a playlist URL
type PlaylistLister interface {
	Parse(ctx context.Context, url string) ([]platform.PlaylistEntry, error)
}

// expandURL turns a YouTube playlist URL into its video URLs; other
// supported URLs pass through. Unsupported URLs fail without a lookup.
func expandURL(ctx context.Context, lister PlaylistLister, url string, logger *slog.Logger) ([]string, error) {
	p, err := download.Match(url)
	if err != nil {
		return nil, err
	}
	if p != download.PlatformYouTube || !platform.IsPlaylistURL(url) {
		return []string{url}, nil
	}

	entries, err := lister.Parse(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("expand playlist: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("playlist has no videos: %s", url)
	}

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, e.URL)
	}
	logger.Info("expanded playlist", "url", url, "videos", len(urls))
	return urls, nil
}

// run starts one download per URL and prints events until all jobs end.
// Unsupported URLs fail before anything starts.
func run(ctx context.Context, w io.Writer, factory *download.Factory, urls []string) error {
	downloaders := make([]download.Downloader, len(urls))
	for i, url := range urls {
		d, err := factory.Get(url)
		if err != nil {
			return err
		}
		downloaders[i] = d
	}

	var mu sync.Mutex
	printer := func(prefix string) func(model.ProgressEvent) {
		return func(event model.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			printEvent(w, prefix, event)
		}
	}

	var wg sync.WaitGroup
	for i, d := range downloaders {
		job := d.Download(ctx, urls[i])
		prefix := ""
		if len(urls) > 1 {
			prefix = fmt.Sprintf("[%d/%d] ", i+1, len(urls))
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			job.Each(printer(prefix))

			outcome, err := job.Wait(ctx)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			printTranscript(w, prefix, outcome)
		}()
	}
	wg.Wait()

	return nil
}

// printEvent is the default progress callback
func printEvent(w io.Writer, prefix string, event model.ProgressEvent) {
	fmt.Fprintf(w, "%s%s\n", prefix, event)
}

func printTranscript(w io.Writer, prefix string, outcome *download.Outcome) {
	fmt.Fprintf(w, "%sTranscribed %s (%s):\n", prefix, outcome.Record.DisplayName(), outcome.Record.AudioPath)
	fmt.Fprintln(w, outcome.Transcript.Text)
}
