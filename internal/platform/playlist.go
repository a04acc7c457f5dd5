package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/types"
	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// URL parts that identify a playlist
const (
	PlaylistParam = "list"
	VideoParam    = "v"
	PlaylistPath  = "/playlist"
	ShortHost     = "youtu.be"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistEntry is a single video of a playlist
type PlaylistEntry struct {
	VideoID string
	Title   string
	Index   int // position reported by YouTube
	URL     string
}

// PlaylistParser lists the videos of a YouTube playlist
type PlaylistParser struct {
	timeout time.Duration
}

// NewPlaylistParser creates a new parser
func NewPlaylistParser() *PlaylistParser {
	return &PlaylistParser{
		timeout: DefaultParseTimeout,
	}
}

// SetTimeout sets the timeout for parsing operations
func (p *PlaylistParser) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL checks if rawURL names a whole playlist. A watch or short
// link that also carries a list parameter is a single video.
func IsPlaylistURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Query().Get(PlaylistParam) == "" {
		return false
	}
	if u.Path == PlaylistPath {
		return true
	}
	if strings.EqualFold(u.Hostname(), ShortHost) {
		return false
	}
	return !u.Query().Has(VideoParam)
}

// Parse returns the entries of the playlist referenced by url
func (p *PlaylistParser) Parse(ctx context.Context, rawURL string) ([]PlaylistEntry, error) {
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("invalid playlist URL: %s", rawURL)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	return toPlaylistEntries(items), nil
}

// toPlaylistEntries converts listed items, skipping those without a video ID
func toPlaylistEntries(items []types.PlaylistItem) []PlaylistEntry {
	entries := make([]PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
			Index:   it.Index,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries
}

// ExtractPlaylistID returns the first list parameter of rawURL, or "" if none
func ExtractPlaylistID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(PlaylistParam)
}
