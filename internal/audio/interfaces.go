package audio

import "context"

// Extractor converts a video file into a standalone audio file.
type Extractor interface {
	// Extract writes the audio track of videoPath and returns the audio file path.
	Extract(ctx context.Context, videoPath string) (string, error)
}
