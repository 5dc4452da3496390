package store

import "time"

// Run records one aggregation run.
type Run struct {
	ID           string
	StartedAt    time.Time
	Input        string
	EntryCount   int
	FirstDay     string
	LastDay      string
	TotalMinutes int64
}

// EntryFilter is used to filter archived entries in queries.
type EntryFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
	Limit    int
}
