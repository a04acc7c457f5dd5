package download

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/ytget/finch/internal/model"
)

// DefaultProgressInterval is how often yt-dlp progress is sampled
const DefaultProgressInterval = 500 * time.Millisecond

// FetchRequest describes one fetcher invocation
type FetchRequest struct {
	URL               string
	Format            string // format selector
	OutputTemplate    string // output path template, e.g. "<dir>/%(title)s.%(ext)s"
	MergeOutputFormat string // container for muxed streams
}

// FetchUpdate is a raw progress report from a fetcher
type FetchUpdate struct {
	Status          model.EventStatus
	FragmentIndex   int
	FragmentCount   int
	DownloadedBytes int
	TotalBytes      int
	ETA             time.Duration
	Speed           float64 // bytes per second
	Filename        string
}

// FetchHook receives fetcher progress on the fetching goroutine
type FetchHook func(FetchUpdate)

// Fetcher downloads remote media to local files
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest, hook FetchHook) error
}

// YTDLPFetcher drives the yt-dlp executable
type YTDLPFetcher struct {
	progressInterval time.Duration
	logger           *slog.Logger
}

// NewYTDLPFetcher creates a fetcher backed by yt-dlp
func NewYTDLPFetcher(logger *slog.Logger) *YTDLPFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &YTDLPFetcher{
		progressInterval: DefaultProgressInterval,
		logger:           logger,
	}
}

// SetProgressInterval sets how often progress is reported; non-positive values are ignored
func (f *YTDLPFetcher) SetProgressInterval(interval time.Duration) {
	if interval > 0 {
		f.progressInterval = interval
	}
}

// Fetch runs yt-dlp for req.URL and blocks until it exits
func (f *YTDLPFetcher) Fetch(ctx context.Context, req FetchRequest, hook FetchHook) error {
	dl := ytdlp.New().
		Format(req.Format).
		Output(req.OutputTemplate).
		MergeOutputFormat(req.MergeOutputFormat)

	if hook != nil {
		dl.ProgressFunc(f.progressInterval, func(update ytdlp.ProgressUpdate) {
			hook(toFetchUpdate(&update))
		})
	}

	f.logger.Debug("running yt-dlp", "url", req.URL, "output", req.OutputTemplate)
	if _, err := dl.Run(ctx, req.URL); err != nil {
		return fmt.Errorf("yt-dlp: %w", err)
	}
	return nil
}

// toFetchUpdate converts a yt-dlp progress update
func toFetchUpdate(update *ytdlp.ProgressUpdate) FetchUpdate {
	u := FetchUpdate{
		Status:          model.EventStatus(update.Status),
		FragmentIndex:   update.FragmentIndex,
		FragmentCount:   update.FragmentCount,
		DownloadedBytes: update.DownloadedBytes,
		TotalBytes:      update.TotalBytes,
		Filename:        update.Filename,
	}

	if eta := update.ETA(); eta > 0 {
		u.ETA = eta
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			u.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	return u
}
