package storage

import (
	"context"
	"time"
)

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastRefresh saves the time of the last successful notification refresh
	SaveLastRefresh(ctx context.Context, at time.Time) error

	// GetLastRefresh returns the zero time if no refresh has been performed yet
	GetLastRefresh(ctx context.Context) (time.Time, error)
}

// Storage объединяет все хранилища клиента
type Storage interface {
	AuthStorage
	CacheStorage
	MetadataStorage
	Close() error
}
