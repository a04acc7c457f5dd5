package download

// Package download implements the fetch -> extract audio -> transcribe
// pipeline. Media is fetched with yt-dlp (via github.com/lrstanley/go-ytdlp),
// one background goroutine runs per download, and progress reaches the caller
// as normalized events on the job's channel.
