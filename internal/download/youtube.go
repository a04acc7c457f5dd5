package download

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ytget/finch/internal/model"
	"github.com/ytget/finch/internal/platform"
	"github.com/ytget/finch/internal/transcribe"
)

// YouTubeDownloader runs the full fetch, extract and transcribe pipeline
type YouTubeDownloader struct {
	opts Options
}

func newYouTubeDownloader(opts Options) *YouTubeDownloader {
	return &YouTubeDownloader{opts: opts}
}

// Platform returns PlatformYouTube
func (y *YouTubeDownloader) Platform() Platform {
	return PlatformYouTube
}

// Downloads is not provided
func (y *YouTubeDownloader) Downloads() ([]model.MediaRecord, error) {
	return nil, ErrNotImplemented
}

// Download starts the pipeline for url in a new goroutine. Each call gets
// its own newly created, randomly named target directory.
func (y *YouTubeDownloader) Download(ctx context.Context, url string) *Job {
	dir, err := platform.CreateUniqueDirectory(filepath.Join(y.opts.RootDir, y.opts.MediaFolder), y.opts.DirNameLength)
	job := newJob(ctx, url, dir)

	if err != nil {
		go y.finish(job, nil, fmt.Errorf("create target directory: %w", err))
		return job
	}

	go func() {
		outcome, err := y.process(ctx, job)
		y.finish(job, outcome, err)
	}()

	return job
}

// finish records the pipeline result; any failure is reported once and ends the task
func (y *YouTubeDownloader) finish(job *Job, outcome *Outcome, err error) {
	log := y.opts.Logger.With("job", job.ID, "url", job.URL)

	if err != nil {
		log.Error("failed to download video", "error", err)
		job.fail(err)
		return
	}

	log.Info("download complete",
		"video", outcome.Record.VideoPath,
		"audio", outcome.Record.AudioPath,
		"hash", outcome.Record.Hash,
	)
	job.succeed(outcome)
}

func (y *YouTubeDownloader) process(ctx context.Context, job *Job) (*Outcome, error) {
	log := y.opts.Logger.With("job", job.ID)
	log.Info("downloading video", "dir", job.Dir)

	req := FetchRequest{
		URL:               job.URL,
		Format:            y.opts.Format,
		OutputTemplate:    filepath.Join(job.Dir, y.opts.OutputTemplate),
		MergeOutputFormat: DefaultMergeOutputFormat,
	}
	hook := func(u FetchUpdate) {
		if event, ok := progressEvent(u); ok {
			job.emit(event)
		}
	}
	if err := y.opts.Fetcher.Fetch(ctx, req, hook); err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	videoPath, err := platform.FindFirstFileWithExt(job.Dir, model.VideoExtension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoVideoFile, err)
	}
	record := model.NewMediaRecord(job.URL, videoPath)

	audioPath, err := y.opts.Extractor.Extract(ctx, record.VideoPath)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	if audioPath != "" && audioPath != record.AudioPath {
		log.Warn("extractor wrote unexpected path", "expected", record.AudioPath, "path", audioPath)
		record.AudioPath = audioPath
	}

	log.Info("transcribing", "engine", y.opts.Engine.Name(), "path", record.AudioPath)
	transcript, err := y.opts.Engine.Transcribe(ctx, transcribe.Request{AudioPath: record.AudioPath})
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	log.Debug("transcribed", "chars", len(transcript.Text), "language", transcript.Language)

	return &Outcome{Record: record, Transcript: transcript}, nil
}
