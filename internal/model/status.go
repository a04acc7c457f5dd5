package model

// EventStatus represents the kind of a progress event
type EventStatus string

const (
	// EventStatusDownloading means the fetcher is transferring data
	EventStatusDownloading EventStatus = "downloading"

	// EventStatusFinished means the fetcher finished writing a file
	EventStatusFinished EventStatus = "finished"

	// EventStatusError means the download task failed and is terminating
	EventStatusError EventStatus = "error"
)

// String returns the string representation of EventStatus
func (s EventStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further events follow an event with this status
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusError
}

// IsKnown returns true for the statuses a fetcher is allowed to report
func (s EventStatus) IsKnown() bool {
	return s == EventStatusDownloading || s == EventStatusFinished || s == EventStatusError
}
