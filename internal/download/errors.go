package download

import "errors"

var (
	// ErrUnsupportedURL is returned by the factory when no platform matches a URL
	ErrUnsupportedURL = errors.New("no matching downloader found for this URL")

	// ErrNotImplemented is reported by operations a platform does not provide
	ErrNotImplemented = errors.New("not implemented")

	// ErrNoVideoFile means the fetcher succeeded but left no video in the target directory
	ErrNoVideoFile = errors.New("no video file downloaded")
)
