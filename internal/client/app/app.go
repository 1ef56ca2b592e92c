// Package app wires the client together. All cached state lives in an App
// value; there is no package-level cache.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	clientapi "github.com/iudanet/qaforum/internal/client/api"
	"github.com/iudanet/qaforum/internal/client/guard"
	"github.com/iudanet/qaforum/internal/client/mutation"
	"github.com/iudanet/qaforum/internal/client/notifications"
	"github.com/iudanet/qaforum/internal/client/session"
	"github.com/iudanet/qaforum/internal/client/storage"
	"github.com/iudanet/qaforum/internal/client/storage/boltdb"
	"github.com/iudanet/qaforum/internal/client/votes"
	"github.com/iudanet/qaforum/internal/config"
)

// App - клиентское приложение: сессия, кэши и хранилище
type App struct {
	Config        *config.Config
	Session       *session.Session
	Guard         *guard.Guard
	Runner        *mutation.Runner
	Votes         *votes.Service
	Notifications *notifications.Service
	storage       storage.Storage
	logger        *slog.Logger
	failures      []*mutation.Failure
	mu            sync.Mutex
}

// Open opens the local database and builds an App talking to cfg.ServerURL
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Открываем BoltDB storage
	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sess := session.New("")
	apiClient := clientapi.NewClient(cfg.ServerURL,
		clientapi.WithTimeout(cfg.RequestTimeout),
		clientapi.WithTokenSource(sess.Token),
		clientapi.WithLogger(logger),
	)

	return New(cfg, logger, sess, store, apiClient), nil
}

// New builds an App from explicit collaborators
func New(cfg *config.Config, logger *slog.Logger, sess *session.Session, store storage.Storage, apiClient clientapi.ClientAPI) *App {
	a := &App{
		Config:  cfg,
		Session: sess,
		Guard:   guard.New(),
		storage: store,
		logger:  logger,
	}

	a.Runner = mutation.NewRunner(a.Guard, logger,
		mutation.WithAuthorizer(sess),
		mutation.WithRefreshLimit(rate.Limit(cfg.RefreshRatePerMinute/60), cfg.RefreshBurst),
		mutation.WithFailureHandler(a.recordFailure),
	)
	a.Votes = votes.NewService(apiClient, a.Runner, logger)
	a.Notifications = notifications.NewService(apiClient, a.Runner, logger, cfg.PageLimit)

	return a
}

// Init restores the session token and the warm cache
func (a *App) Init(ctx context.Context) error {
	token := a.Config.Token
	if token == "" {
		stored, err := a.storage.GetToken(ctx)
		switch {
		case errors.Is(err, storage.ErrAuthNotFound):
			// Не авторизован - чтение кэша всё равно доступно
		case err != nil:
			return fmt.Errorf("failed to load token: %w", err)
		default:
			token = stored
		}
	}
	a.Session.SetToken(token)

	votables, err := a.storage.LoadVotables(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore cache: %w", err)
	}
	for _, v := range votables {
		a.Votes.Seed(v)
	}

	snapshot, err := a.storage.LoadNotifications(ctx)
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		// Первый запуск
	case err != nil:
		return fmt.Errorf("failed to restore cache: %w", err)
	default:
		refreshedAt, err := a.storage.GetLastRefresh(ctx)
		if err != nil {
			return fmt.Errorf("failed to restore cache: %w", err)
		}
		a.Notifications.Restore(snapshot.Items, snapshot.Aggregate, refreshedAt)
	}

	a.logger.Debug("Client initialized",
		"votables", len(votables),
		"signed_in", token != "")
	return nil
}

// Login stores a bearer token for later runs. An expired token is rejected
// before the current session or the database is touched.
func (a *App) Login(ctx context.Context, token string) error {
	if err := session.New(token).Authorize(); err != nil {
		return err
	}

	if err := a.storage.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	a.Session.SetToken(token)
	return nil
}

// Persist waits for in-flight mutations and saves the confirmed cache
func (a *App) Persist(ctx context.Context) error {
	a.Runner.Wait()

	if err := a.storage.SaveVotables(ctx, a.Votes.All()); err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}

	store := a.Notifications.Store()
	snapshot := &storage.NotificationSnapshot{
		Items:     store.All(),
		Aggregate: store.Aggregate(),
	}
	if err := a.storage.SaveNotifications(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}

	if at := a.Notifications.RefreshedAt(); !at.IsZero() {
		if err := a.storage.SaveLastRefresh(ctx, at); err != nil {
			return fmt.Errorf("failed to save cache: %w", err)
		}
	}
	return nil
}

// Teardown signs out: waits for in-flight mutations, then drops every cache,
// releases the guard, clears the session and the local database.
func (a *App) Teardown(ctx context.Context) error {
	a.Runner.Wait()

	a.Votes.Reset()
	a.Notifications.Store().Reset()
	a.Guard.Reset()
	a.Session.Clear()

	a.mu.Lock()
	a.failures = nil
	a.mu.Unlock()

	if err := a.storage.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear local data: %w", err)
	}
	if err := a.storage.DeleteToken(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close waits for in-flight mutations and closes the database
func (a *App) Close() error {
	a.Runner.Wait()
	return a.storage.Close()
}

// Failures returns the notices of rolled back mutations, oldest first
func (a *App) Failures() []*mutation.Failure {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]*mutation.Failure(nil), a.failures...)
}

func (a *App) recordFailure(f *mutation.Failure) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.failures = append(a.failures, f)
}
