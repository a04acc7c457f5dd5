package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestProgressEvent_ETAString(t *testing.T) {
	tests := []struct {
		eta      time.Duration
		expected string
	}{
		{-time.Second, Unknown},
		{0, Unknown},
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{time.Hour, "01:00:00"},
		{3661 * time.Second, "01:01:01"},
		{7323 * time.Second, "02:02:03"},
	}

	for _, test := range tests {
		event := DownloadingEvent(0, test.eta, 0)
		result := event.ETAString()
		if result != test.expected {
			t.Errorf("ETAString() with ETA=%v = %s, expected %s", test.eta, result, test.expected)
		}
	}
}

func TestProgressEvent_SpeedString(t *testing.T) {
	if got := DownloadingEvent(0, 0, 0).SpeedString(); got != Unknown {
		t.Errorf("Expected unknown speed to render as Unknown, got %s", got)
	}

	got := DownloadingEvent(0, 0, 1_200_000).SpeedString()
	if got != "1.2 MB/s" {
		t.Errorf("Expected '1.2 MB/s', got %s", got)
	}
}

func TestProgressEvent_Constructors(t *testing.T) {
	finished := FinishedEvent("/media/abc/video.mp4")
	if finished.Status != EventStatusFinished || finished.Filename != "/media/abc/video.mp4" {
		t.Errorf("Unexpected finished event: %+v", finished)
	}

	failed := ErrorEvent(errors.New("network unreachable"))
	if failed.Status != EventStatusError || failed.Message != "network unreachable" {
		t.Errorf("Unexpected error event: %+v", failed)
	}
}

func TestProgressEvent_String(t *testing.T) {
	tests := []struct {
		event    ProgressEvent
		contains string
	}{
		{DownloadingEvent(50, 90*time.Second, 0), "downloading 50.00% eta=01:30"},
		{FinishedEvent("/tmp/a.mp4"), "finished /tmp/a.mp4"},
		{ErrorEvent(errors.New("boom")), "error boom"},
	}

	for _, test := range tests {
		result := test.event.String()
		if !strings.Contains(result, test.contains) {
			t.Errorf("String() = %q, expected it to contain %q", result, test.contains)
		}
	}
}
