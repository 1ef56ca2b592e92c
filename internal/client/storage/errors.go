package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no token is stored
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrSnapshotNotFound indicates that no cache snapshot has been saved yet
	ErrSnapshotNotFound = errors.New("cache snapshot not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
