package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/qaforum/internal/client/storage"
)

var authKey = []byte("current")

// SaveToken stores the bearer token
func (s *Storage) SaveToken(ctx context.Context, token string) error {
	return s.update(bucketAuth, func(bucket *bbolt.Bucket) error {
		if err := bucket.Put(authKey, []byte(token)); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		return nil
	})
}

// GetToken retrieves the stored token
func (s *Storage) GetToken(ctx context.Context) (string, error) {
	var token string

	err := s.view(bucketAuth, func(bucket *bbolt.Bucket) error {
		data := bucket.Get(authKey)
		if data == nil {
			return storage.ErrAuthNotFound
		}
		// Данные действительны только внутри транзакции - копируем
		token = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// DeleteToken removes the stored token (logout)
func (s *Storage) DeleteToken(ctx context.Context) error {
	return s.update(bucketAuth, func(bucket *bbolt.Bucket) error {
		// Проверяем существование данных
		if bucket.Get(authKey) == nil {
			return storage.ErrAuthNotFound
		}

		if err := bucket.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		return nil
	})
}
