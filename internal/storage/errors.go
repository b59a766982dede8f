package storage

import "errors"

var (
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when a write collides with an existing key.
	ErrConflict = errors.New("resource conflict (e.g., duplicate key)")
	// ErrStaleState is returned by conditional writes when the stored state no
	// longer matches the state the caller read.
	ErrStaleState = errors.New("resource state changed concurrently")
	// ErrUnknownStat is returned by IncrementStat for a counter name outside the known set.
	ErrUnknownStat = errors.New("unknown stat counter")
)
