package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/qaforum/internal/client/api"
	"github.com/iudanet/qaforum/internal/client/session"
	"github.com/iudanet/qaforum/internal/client/storage"
	"github.com/iudanet/qaforum/internal/client/storage/boltdb"
	"github.com/iudanet/qaforum/internal/config"
	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestApp создает App поверх временной BoltDB и мока API
func newTestApp(t *testing.T, dbPath string, mock clientapi.ClientAPI) *App {
	t.Helper()

	cfg := config.Default()
	cfg.DBPath = dbPath

	store, err := boltdb.New(context.Background(), dbPath)
	require.NoError(t, err)

	a := New(cfg, testLogger(), session.New(""), store, mock)
	t.Cleanup(func() {
		_ = a.Close()
	})
	return a
}

func voteResponse(count int, state models.VoteState) *api.VoteResponse {
	return &api.VoteResponse{VoteCount: &count, UserVote: &state}
}

func apiMock() *clientapi.ClientAPIMock {
	return &clientapi.ClientAPIMock{
		GetVotableFunc: func(ctx context.Context, kind models.EntityKind, id string) (*api.VotableResponse, error) {
			return &api.VotableResponse{QuestionID: id, Title: "Channels?", VoteCount: 5}, nil
		},
		VoteFunc: func(ctx context.Context, kind models.EntityKind, id string, voteType models.VoteState) (*api.VoteResponse, error) {
			return voteResponse(6, models.VoteUp), nil
		},
		ListNotificationsFunc: func(ctx context.Context, filter models.NotificationFilter) (*api.NotificationListResponse, error) {
			return &api.NotificationListResponse{Notifications: []models.Notification{
				{ID: "n1", Title: "New answer", Priority: models.PriorityHigh},
			}}, nil
		},
		CountNotificationsFunc: func(ctx context.Context) (*api.NotificationCountResponse, error) {
			return &api.NotificationCountResponse{Total: 1, Unread: 1, ByPriority: map[models.Priority]int{models.PriorityHigh: 1}}, nil
		},
	}
}

func TestApp_InitSignedOut(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "qa.db"), apiMock())

	require.NoError(t, a.Init(context.Background()))
	require.ErrorIs(t, a.Session.Authorize(), clientapi.ErrUnauthorized)

	// Мутация без токена не трогает кэш
	a.Votes.Seed(models.Votable{ID: "q1", Kind: models.KindQuestion, VoteCount: 5})
	_, err := a.Votes.Vote(context.Background(), models.KindQuestion, "q1", models.VoteUp)
	require.ErrorIs(t, err, clientapi.ErrUnauthorized)

	v, _ := a.Votes.Cached(models.KindQuestion, "q1")
	assert.Equal(t, 5, v.VoteCount)
}

func TestApp_LoginRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, filepath.Join(t.TempDir(), "qa.db"), apiMock())
	require.NoError(t, a.Login(ctx, "valid-opaque"))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	err = a.Login(ctx, expired)
	require.ErrorIs(t, err, clientapi.ErrUnauthorized)

	// Предыдущий токен остаётся и в сессии, и в базе
	assert.Equal(t, "valid-opaque", a.Session.Token())
	stored, err := a.storage.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "valid-opaque", stored)
}

func TestApp_LoginExpiredTokenSignedOut(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, filepath.Join(t.TempDir(), "qa.db"), apiMock())

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	require.ErrorIs(t, a.Login(ctx, expired), clientapi.ErrUnauthorized)

	_, err = a.storage.GetToken(ctx)
	require.ErrorIs(t, err, storage.ErrAuthNotFound)
	assert.Empty(t, a.Session.Token())
}

func TestApp_TokenFromConfigWins(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "qa.db"), apiMock())
	require.NoError(t, a.Login(context.Background(), "stored"))

	a.Config.Token = "from-config"
	require.NoError(t, a.Init(context.Background()))
	assert.Equal(t, "from-config", a.Session.Token())
}

func TestApp_PersistAndRestore(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "qa.db")

	first := newTestApp(t, dbPath, apiMock())
	require.NoError(t, first.Init(ctx))
	require.NoError(t, first.Login(ctx, "token"))

	p, err := first.Votes.Vote(ctx, models.KindQuestion, "q1", models.VoteUp)
	require.NoError(t, err)
	require.NoError(t, p.Wait(ctx))
	require.NoError(t, first.Notifications.Refresh(ctx, first.Notifications.DefaultFilter()))

	require.NoError(t, first.Persist(ctx))
	require.NoError(t, first.Close())

	// Новый запуск: тёплый кэш без сетевых запросов
	mock := &clientapi.ClientAPIMock{}
	second := newTestApp(t, dbPath, mock)
	require.NoError(t, second.Init(ctx))

	assert.Equal(t, "token", second.Session.Token())

	v, ok := second.Votes.Cached(models.KindQuestion, "q1")
	require.True(t, ok)
	assert.Equal(t, models.Votable{ID: "q1", Kind: models.KindQuestion, Title: "Channels?", VoteCount: 6, UserVote: models.VoteUp}, v)

	items, agg := second.Notifications.View()
	require.Len(t, items, 1)
	assert.Equal(t, "n1", items[0].ID)
	assert.Equal(t, 1, agg.Unread)
	assert.False(t, second.Notifications.RefreshedAt().IsZero())
}

func TestApp_Teardown(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "qa.db")

	a := newTestApp(t, dbPath, apiMock())
	require.NoError(t, a.Init(ctx))
	require.NoError(t, a.Login(ctx, "token"))
	require.NoError(t, a.Notifications.Refresh(ctx, a.Notifications.DefaultFilter()))
	_, err := a.Votes.Get(ctx, models.KindQuestion, "q1")
	require.NoError(t, err)
	require.NoError(t, a.Persist(ctx))

	require.NoError(t, a.Teardown(ctx))

	assert.Empty(t, a.Votes.All())
	assert.Empty(t, a.Notifications.List())
	assert.Zero(t, a.Notifications.Aggregate().Unread)
	assert.Empty(t, a.Session.Token())
	assert.Empty(t, a.Failures())

	_, err = a.storage.GetToken(ctx)
	require.ErrorIs(t, err, storage.ErrAuthNotFound)
	_, err = a.storage.LoadNotifications(ctx)
	require.ErrorIs(t, err, storage.ErrSnapshotNotFound)

	// Повторный выход без токена - не ошибка
	require.NoError(t, a.Teardown(ctx))
}

func TestApp_RecordsFailures(t *testing.T) {
	ctx := context.Background()
	mock := apiMock()
	mock.VoteFunc = func(ctx context.Context, kind models.EntityKind, id string, voteType models.VoteState) (*api.VoteResponse, error) {
		return nil, fmt.Errorf("%w: connection refused", clientapi.ErrNetworkFailure)
	}

	a := newTestApp(t, filepath.Join(t.TempDir(), "qa.db"), mock)
	require.NoError(t, a.Init(ctx))
	require.NoError(t, a.Login(ctx, "token"))

	p, err := a.Votes.Vote(ctx, models.KindQuestion, "q1", models.VoteUp)
	require.NoError(t, err)
	require.Error(t, p.Wait(ctx))

	failures := a.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "vote", failures[0].Op)
	assert.Equal(t, "question:q1", failures[0].EntityID)
}

func TestOpen(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "qa.db")
	cfg.RequestTimeout = time.Second

	a, err := Open(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	require.NoError(t, a.Init(context.Background()))
	require.NoError(t, a.Close())
}
