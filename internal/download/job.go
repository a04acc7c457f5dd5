package download

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/finch/internal/model"
	"github.com/ytget/finch/internal/transcribe"
)

// Job constants
const (
	JobIDPrefix = "job-"

	// EventBufferSize is the capacity of a job's event channel
	EventBufferSize = 32
)

// Outcome is the product of a successful download task
type Outcome struct {
	Record     model.MediaRecord
	Transcript *transcribe.Result
}

// Job is the handle for one background download task.
//
// Events are sent from the task goroutine. Downloading events are dropped
// when the buffer is full; finished and error events wait for the consumer
// unless the task context is cancelled. The channel is closed when the task
// ends, after the outcome is recorded.
type Job struct {
	ID  string
	URL string
	Dir string // target directory, empty for platforms that do not fetch

	ctx     context.Context
	events  chan model.ProgressEvent
	outcome *Outcome
	err     error
}

// newJob creates a job whose sends are bounded by ctx
func newJob(ctx context.Context, url, dir string) *Job {
	return &Job{
		ID:     generateJobID(),
		URL:    url,
		Dir:    dir,
		ctx:    ctx,
		events: make(chan model.ProgressEvent, EventBufferSize),
	}
}

// Events returns the channel of progress events, closed when the task ends
func (j *Job) Events() <-chan model.ProgressEvent {
	return j.events
}

// Each calls fn for every event on the caller's goroutine until the task ends
func (j *Job) Each(fn func(model.ProgressEvent)) {
	for event := range j.events {
		if fn != nil {
			fn(event)
		}
	}
}

// Wait blocks until the task ends and returns its outcome. Events not yet
// consumed are discarded.
func (j *Job) Wait(ctx context.Context) (*Outcome, error) {
	for {
		select {
		case _, ok := <-j.events:
			if !ok {
				return j.outcome, j.err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// emit delivers event according to the buffering rules above
func (j *Job) emit(event model.ProgressEvent) {
	if event.Status == model.EventStatusDownloading {
		select {
		case j.events <- event:
		default:
		}
		return
	}

	// A cancelled context only abandons the event when the buffer is full
	select {
	case j.events <- event:
		return
	default:
	}

	select {
	case j.events <- event:
	case <-j.ctx.Done():
	}
}

// succeed records the outcome and ends the task
func (j *Job) succeed(outcome *Outcome) {
	j.outcome = outcome
	close(j.events)
}

// fail reports err once and ends the task
func (j *Job) fail(err error) {
	j.err = err
	j.emit(model.ErrorEvent(err))
	close(j.events)
}

// generateJobID generates a unique, time ordered job ID
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
