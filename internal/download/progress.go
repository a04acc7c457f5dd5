package download

import "github.com/ytget/finch/internal/model"

// Normalize maps current within [floor, total] onto a percentage.
// A degenerate range (total == floor), as reported by fetchers that know no
// fragment count yet, yields 0.
func Normalize(current, total, floor int) float64 {
	if total == floor {
		return 0
	}
	return float64(current-floor) / float64(total-floor) * 100
}

// progressEvent converts a raw fetcher update into the event delivered to
// consumers. Statuses yt-dlp reports beyond the known set (starting,
// post_processing) are dropped, as are fetcher error updates: the failure
// surfaces through Fetch's return value and is reported once by the task.
func progressEvent(u FetchUpdate) (model.ProgressEvent, bool) {
	if !u.Status.IsKnown() || u.Status.IsTerminal() {
		return model.ProgressEvent{}, false
	}

	switch u.Status {
	case model.EventStatusDownloading:
		percent := Normalize(u.FragmentIndex, u.FragmentCount, 0)
		if u.FragmentCount == 0 && u.TotalBytes > 0 {
			percent = Normalize(u.DownloadedBytes, u.TotalBytes, 0)
		}
		return model.DownloadingEvent(percent, u.ETA, u.Speed), true
	case model.EventStatusFinished:
		return model.FinishedEvent(u.Filename), true
	default:
		return model.ProgressEvent{}, false
	}
}
