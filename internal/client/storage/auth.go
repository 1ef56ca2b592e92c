package storage

import "context"

// AuthStorage хранит bearer token между запусками CLI
type AuthStorage interface {
	// SaveToken stores the token as-is
	SaveToken(ctx context.Context, token string) error

	// GetToken returns the stored token or ErrAuthNotFound
	GetToken(ctx context.Context) (string, error)

	// DeleteToken removes the stored token (logout)
	DeleteToken(ctx context.Context) error
}
