package model

// Package model defines domain data structures shared across the pipeline:
// media records produced by a finished download, progress events delivered
// to consumers, and the status enum those events carry.
