package download

import (
	"context"
	"log/slog"

	"github.com/ytget/finch/internal/model"
)

// VimeoDownloader is recognized by the factory but cannot download yet.
// Its tasks end immediately with ErrNotImplemented.
type VimeoDownloader struct {
	logger *slog.Logger
}

func newVimeoDownloader(logger *slog.Logger) *VimeoDownloader {
	return &VimeoDownloader{logger: logger}
}

// Platform returns PlatformVimeo
func (v *VimeoDownloader) Platform() Platform {
	return PlatformVimeo
}

// Downloads is not provided
func (v *VimeoDownloader) Downloads() ([]model.MediaRecord, error) {
	return nil, ErrNotImplemented
}

// Download reports ErrNotImplemented through the job
func (v *VimeoDownloader) Download(ctx context.Context, url string) *Job {
	job := newJob(ctx, url, "")

	go func() {
		v.logger.Warn("vimeo downloads are not supported", "job", job.ID, "url", url)
		job.fail(ErrNotImplemented)
	}()

	return job
}
