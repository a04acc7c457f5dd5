package platform

// Package platform contains filesystem and external tooling glue: session
// directory helpers, random directory names, and playlist expansion via yt-dlp.
