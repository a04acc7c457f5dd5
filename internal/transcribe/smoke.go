package transcribe

import (
	"context"
	"fmt"
	"io"
)

// DefaultSmokeAudio is the audio file transcribed by the standalone check
const DefaultSmokeAudio = "./media/audio.mp3"

// RunSmoke transcribes audioPath with language detection and writes the
// detected language and the text to w. It exercises an engine without the
// download pipeline.
func RunSmoke(ctx context.Context, w io.Writer, engine Engine, audioPath string) error {
	res, err := engine.Transcribe(ctx, Request{AudioPath: audioPath, DetectLanguage: true})
	if err != nil {
		return err
	}

	language := res.Language
	if language == "" {
		language = "unknown"
	}
	fmt.Fprintf(w, "Detected language: %s\n", language)
	fmt.Fprintln(w, res.Text)
	return nil
}
