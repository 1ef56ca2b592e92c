package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/qaforum/internal/client/storage"
)

func TestToken_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetToken(ctx)
	require.ErrorIs(t, err, storage.ErrAuthNotFound)

	require.NoError(t, store.SaveToken(ctx, "abc"))
	token, err := store.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	// Перезапись
	require.NoError(t, store.SaveToken(ctx, "def"))
	token, err = store.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "def", token)

	require.NoError(t, store.DeleteToken(ctx))
	_, err = store.GetToken(ctx)
	require.ErrorIs(t, err, storage.ErrAuthNotFound)

	err = store.DeleteToken(ctx)
	require.ErrorIs(t, err, storage.ErrAuthNotFound)
}
