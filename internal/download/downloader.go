package download

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/ytget/finch/internal/audio"
	"github.com/ytget/finch/internal/model"
	"github.com/ytget/finch/internal/platform"
	"github.com/ytget/finch/internal/transcribe"
)

// Platform identifies the site a downloader handles
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformVimeo   Platform = "vimeo"
)

// Downloader defines the capability every platform variant offers.
type Downloader interface {
	// Download starts a background fetch, extract and transcribe task for url
	// and returns immediately.
	Download(ctx context.Context, url string) *Job

	// Downloads lists completed records. No variant keeps them yet.
	Downloads() ([]model.MediaRecord, error)

	Platform() Platform
}

// Pipeline defaults
const (
	DefaultMediaFolder       = "media"
	DefaultDirNameLength     = 8
	DefaultFormat            = "bestvideo[height<=1080][vcodec^=avc]+bestaudio[acodec=aac]/best[ext=mp4]"
	DefaultOutputTemplate    = "%(title)s.%(ext)s"
	DefaultMergeOutputFormat = "mp4" // must yield model.VideoExtension
)

// Options configures the downloaders built by a Factory. Zero values take
// the defaults above; nil collaborators get their production implementation.
type Options struct {
	RootDir        string // parent of the media folder, default: parent of the working directory
	MediaFolder    string
	DirNameLength  int
	Format         string
	OutputTemplate string // file name template inside the target directory

	Fetcher   Fetcher
	Extractor audio.Extractor
	Engine    transcribe.Engine
	Logger    *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.RootDir == "" {
		root, err := platform.ProjectRoot()
		if err != nil {
			o.Logger.Warn("cannot resolve project root, using working directory", "error", err)
			root = "."
		}
		o.RootDir = root
	}
	if o.MediaFolder == "" {
		o.MediaFolder = DefaultMediaFolder
	}
	if o.DirNameLength <= 0 {
		o.DirNameLength = DefaultDirNameLength
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.OutputTemplate == "" {
		o.OutputTemplate = DefaultOutputTemplate
	}
	if o.Fetcher == nil {
		o.Fetcher = NewYTDLPFetcher(o.Logger)
	}
	if o.Extractor == nil {
		o.Extractor = audio.NewService(o.Logger)
	}
	if o.Engine == nil {
		o.Engine = transcribe.NewWhisperEngine(transcribe.WhisperConfig{})
	}
	return o
}

type route struct {
	platform Platform
	pattern  *regexp.Regexp
}

// routes are tried in order; the first match wins
var routes = []route{
	{PlatformYouTube, regexp.MustCompile(`(youtube\.com|youtu\.be)`)},
	{PlatformVimeo, regexp.MustCompile(`vimeo\.com`)},
}

// Factory selects the downloader responsible for a URL
type Factory struct {
	opts Options
}

// NewFactory creates a factory; opts defaults are resolved once here
func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts.withDefaults()}
}

// Match returns the platform whose pattern matches url
func Match(url string) (Platform, error) {
	for _, r := range routes {
		if r.pattern.MatchString(url) {
			return r.platform, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedURL, url)
}

// Get returns the downloader for url. Nothing is started.
func (f *Factory) Get(url string) (Downloader, error) {
	p, err := Match(url)
	if err != nil {
		return nil, err
	}

	switch p {
	case PlatformYouTube:
		return newYouTubeDownloader(f.opts), nil
	case PlatformVimeo:
		return newVimeoDownloader(f.opts.Logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, url)
	}
}
