package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Unknown is rendered for fields a fetcher did not report
const Unknown = "—"

// ProgressEvent is a transient status snapshot handed to a consumer once.
// Which fields are meaningful depends on Status.
type ProgressEvent struct {
	Status   EventStatus
	Percent  float64       // downloading: 0 to 100
	ETA      time.Duration // downloading: 0 if unknown
	Speed    float64       // downloading: bytes per second, 0 if unknown
	Filename string        // finished: file written by the fetcher
	Message  string        // error: failure description
}

// DownloadingEvent creates a progress snapshot
func DownloadingEvent(percent float64, eta time.Duration, speed float64) ProgressEvent {
	return ProgressEvent{
		Status:  EventStatusDownloading,
		Percent: percent,
		ETA:     eta,
		Speed:   speed,
	}
}

// FinishedEvent reports a file the fetcher has completed
func FinishedEvent(filename string) ProgressEvent {
	return ProgressEvent{Status: EventStatusFinished, Filename: filename}
}

// ErrorEvent reports the failure that terminated a task
func ErrorEvent(err error) ProgressEvent {
	return ProgressEvent{Status: EventStatusError, Message: err.Error()}
}

// ETAString returns ETA formatted as hh:mm:ss or mm:ss, or Unknown
func (e ProgressEvent) ETAString() string {
	secs := int(e.ETA.Seconds())
	if secs <= 0 {
		return Unknown
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// SpeedString returns a human readable speed such as "1.2 MB/s", or Unknown
func (e ProgressEvent) SpeedString() string {
	if e.Speed <= 0 {
		return Unknown
	}
	return humanize.Bytes(uint64(e.Speed)) + "/s"
}

// String renders the event on a single line
func (e ProgressEvent) String() string {
	var b strings.Builder
	b.WriteString(string(e.Status))
	switch e.Status {
	case EventStatusDownloading:
		fmt.Fprintf(&b, " %.2f%% eta=%s speed=%s", e.Percent, e.ETAString(), e.SpeedString())
	case EventStatusFinished:
		fmt.Fprintf(&b, " %s", e.Filename)
	case EventStatusError:
		fmt.Fprintf(&b, " %s", e.Message)
	}
	return b.String()
}
