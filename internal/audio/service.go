package audio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ytget/finch/internal/model"
)

// FFmpeg constants for audio extraction
const (
	// SampleRate is the fixed output sample rate in Hz
	SampleRate = 20000

	// Output container
	AudioFormat = "mp3"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
)

// ProgressFunc receives the fraction (0.0 to 1.0) of videoPath converted so far
type ProgressFunc func(videoPath string, fraction float64)

// Service extracts audio tracks with ffmpeg
type Service struct {
	ffmpegBin  string
	ffprobeBin string
	logger     *slog.Logger
	onProgress ProgressFunc
}

// NewService creates a new extraction service using ffmpeg and ffprobe from PATH
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ffmpegBin:  FFmpegCommand,
		ffprobeBin: FFprobeCommand,
		logger:     logger,
	}
}

// SetBinaries overrides the ffmpeg and ffprobe executables; empty values are ignored
func (s *Service) SetBinaries(ffmpegBin, ffprobeBin string) {
	if ffmpegBin != "" {
		s.ffmpegBin = ffmpegBin
	}
	if ffprobeBin != "" {
		s.ffprobeBin = ffprobeBin
	}
}

// SetProgressCallback sets the callback function for conversion progress
func (s *Service) SetProgressCallback(callback ProgressFunc) {
	s.onProgress = callback
}

// Extract converts videoPath to an MP3 with the same basename next to it
func (s *Service) Extract(ctx context.Context, videoPath string) (string, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return "", fmt.Errorf("input file does not exist: %s", videoPath)
	}

	audioPath := model.AudioPathFor(videoPath)

	// Duration is only needed for progress reporting
	duration, err := s.getDuration(ctx, videoPath)
	if err != nil {
		s.logger.Debug("ffprobe failed, converting without progress", "path", videoPath, "error", err)
		duration = 0
	}

	cmd := exec.CommandContext(ctx, s.ffmpegBin, s.BuildFFmpegArgs(videoPath, audioPath)...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	// stderr must be drained before Wait closes it
	msg := <-s.monitorProgress(stderr, videoPath, duration)

	if err := cmd.Wait(); err != nil {
		if msg != "" {
			return "", fmt.Errorf("ffmpeg failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("ffmpeg failed: %w", err)
	}

	s.logger.Debug("audio extracted", "video", videoPath, "audio", audioPath)
	return audioPath, nil
}

// BuildFFmpegArgs builds the ffmpeg arguments: overwrite, drop video,
// resample, write an MP3 and report progress on stderr
func (s *Service) BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-ar", strconv.Itoa(SampleRate),
		"-f", AudioFormat,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	}
}

// getDuration gets the duration in seconds of a media file using ffprobe
func (s *Service) getDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, s.ffprobeBin, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	return parseDuration(string(output))
}

// parseDuration parses ffprobe's duration output
func parseDuration(output string) (float64, error) {
	duration, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress reads ffmpeg's stderr in the background. The returned
// channel yields the last non-progress line once stderr is exhausted.
func (s *Service) monitorProgress(stderr io.ReadCloser, videoPath string, totalDuration float64) <-chan string {
	tail := make(chan string, 1)

	go func() {
		defer stderr.Close()
		var last string
		scanner := bufio.NewScanner(stderr)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			fraction, ok := parseProgressLine(line, totalDuration)
			if !ok {
				if line != "" && !strings.Contains(line, "=") {
					last = line
				}
				continue
			}

			if s.onProgress != nil {
				s.onProgress(videoPath, fraction)
			}
		}
		tail <- last
	}()

	return tail
}

// parseProgressLine converts an "out_time_us=123456" line into a fraction of totalDuration
func parseProgressLine(line string, totalDuration float64) (float64, bool) {
	if !strings.HasPrefix(line, ProgressTimePrefix) || totalDuration <= 0 {
		return 0, false
	}

	timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil {
		return 0, false
	}

	progress := float64(timeMicroseconds) / 1000000.0 / totalDuration
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0 {
		progress = 0
	}
	return progress, true
}
