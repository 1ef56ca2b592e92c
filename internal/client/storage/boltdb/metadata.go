package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	keyLastRefresh = "last_refresh"
)

// SaveLastRefresh saves the time of the last successful notification refresh
func (s *Storage) SaveLastRefresh(ctx context.Context, at time.Time) error {
	return s.update(bucketMetadata, func(bucket *bbolt.Bucket) error {
		// Конвертируем время в bytes (unix nano)
		data := make([]byte, 8)
		binary.BigEndian.PutUint64(data, uint64(at.UnixNano()))

		if err := bucket.Put([]byte(keyLastRefresh), data); err != nil {
			return fmt.Errorf("failed to save last refresh: %w", err)
		}
		return nil
	})
}

// GetLastRefresh retrieves the time of the last successful refresh.
// Returns the zero time if no refresh has been performed yet.
func (s *Storage) GetLastRefresh(ctx context.Context) (time.Time, error) {
	var at time.Time

	err := s.view(bucketMetadata, func(bucket *bbolt.Bucket) error {
		data := bucket.Get([]byte(keyLastRefresh))
		if data == nil {
			return nil
		}
		at = time.Unix(0, int64(binary.BigEndian.Uint64(data)))
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last refresh: %w", err)
	}

	return at, nil
}
