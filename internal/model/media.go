package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// File extensions of the two artifacts of a download session
const (
	VideoExtension = ".mp4"
	AudioExtension = ".mp3"
)

// MediaRecord describes the files produced by one download session.
// It is built once the fetcher finishes and is not modified afterwards.
type MediaRecord struct {
	Hash      string // stable digest of URL
	AudioPath string // converted audio, same basename as VideoPath
	VideoPath string // muxed container written by the fetcher
	URL       string // source URL
}

// NewMediaRecord builds a record for a video file fetched from url.
// The audio path is derived from the video path so both always share a basename.
func NewMediaRecord(url, videoPath string) MediaRecord {
	return MediaRecord{
		Hash:      HashURL(url),
		AudioPath: AudioPathFor(videoPath),
		VideoPath: videoPath,
		URL:       url,
	}
}

// HashURL returns a digest of url that is stable across process runs
func HashURL(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}

// AudioPathFor replaces the extension of videoPath with the audio extension
func AudioPathFor(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + AudioExtension
}

// Dir returns the session directory holding both files
func (r MediaRecord) Dir() string {
	return filepath.Dir(r.VideoPath)
}

// DisplayName returns the video basename without extension, or the URL
func (r MediaRecord) DisplayName() string {
	if r.VideoPath != "" {
		name := filepath.Base(r.VideoPath)
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name
	}
	return r.URL
}
