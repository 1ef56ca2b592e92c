package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/qaforum/internal/client/storage"
	"github.com/iudanet/qaforum/internal/models"
)

var (
	keyNotificationAggregate = []byte("aggregate")
	keyNotificationItems     = []byte("items")
)

// SaveVotables replaces the stored questions and answers
func (s *Storage) SaveVotables(ctx context.Context, votables []models.Votable) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Пересоздаём bucket - сохраняется полный снимок
		if err := tx.DeleteBucket(bucketVotables); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to clear votables: %w", err)
		}
		bucket, err := tx.CreateBucket(bucketVotables)
		if err != nil {
			return fmt.Errorf("failed to create votables bucket: %w", err)
		}

		for _, v := range votables {
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", v.CacheKey(), err)
			}
			if err := bucket.Put([]byte(v.CacheKey()), data); err != nil {
				return fmt.Errorf("failed to save %s: %w", v.CacheKey(), err)
			}
		}
		return nil
	})
}

// LoadVotables returns stored questions and answers ordered by key
func (s *Storage) LoadVotables(ctx context.Context) ([]models.Votable, error) {
	var votables []models.Votable

	err := s.view(bucketVotables, func(bucket *bbolt.Bucket) error {
		return bucket.ForEach(func(k, data []byte) error {
			var v models.Votable
			if err := json.Unmarshal(data, &v); err != nil {
				return fmt.Errorf("failed to unmarshal %s: %w", k, err)
			}
			votables = append(votables, v)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load votables: %w", err)
	}

	return votables, nil
}

// SaveNotifications replaces the stored notification list and counters
func (s *Storage) SaveNotifications(ctx context.Context, snapshot *storage.NotificationSnapshot) error {
	aggData, err := json.Marshal(snapshot.Aggregate)
	if err != nil {
		return fmt.Errorf("failed to marshal aggregate: %w", err)
	}
	itemsData, err := json.Marshal(snapshot.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal notifications: %w", err)
	}

	return s.update(bucketNotifications, func(bucket *bbolt.Bucket) error {
		// Элементы и счётчики пишутся в одной транзакции
		if err := bucket.Put(keyNotificationAggregate, aggData); err != nil {
			return fmt.Errorf("failed to save aggregate: %w", err)
		}
		if err := bucket.Put(keyNotificationItems, itemsData); err != nil {
			return fmt.Errorf("failed to save notifications: %w", err)
		}
		return nil
	})
}

// LoadNotifications returns the stored list and counters
func (s *Storage) LoadNotifications(ctx context.Context) (*storage.NotificationSnapshot, error) {
	snapshot := &storage.NotificationSnapshot{}

	err := s.view(bucketNotifications, func(bucket *bbolt.Bucket) error {
		aggData := bucket.Get(keyNotificationAggregate)
		itemsData := bucket.Get(keyNotificationItems)
		if aggData == nil || itemsData == nil {
			return storage.ErrSnapshotNotFound
		}

		if err := json.Unmarshal(aggData, &snapshot.Aggregate); err != nil {
			return fmt.Errorf("failed to unmarshal aggregate: %w", err)
		}
		if err := json.Unmarshal(itemsData, &snapshot.Items); err != nil {
			return fmt.Errorf("failed to unmarshal notifications: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Clear removes every cached entity and the refresh metadata.
// The stored token is kept.
func (s *Storage) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketVotables, bucketNotifications, bucketMetadata} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
				return fmt.Errorf("failed to delete %s bucket: %w", name, err)
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
