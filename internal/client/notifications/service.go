// Package notifications keeps the user's notifications and their aggregate
// counters and changes them optimistically.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	clientapi "github.com/iudanet/qaforum/internal/client/api"
	"github.com/iudanet/qaforum/internal/client/mutation"
	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/pkg/api"
)

const markAllKey = "notifications:all"

// Service сервис уведомлений
type Service struct {
	refreshedAt time.Time
	api         clientapi.ClientAPI
	runner      *mutation.Runner
	store       *Store
	logger      *slog.Logger
	now         func() time.Time
	filter      models.NotificationFilter
	flight      singleflight.Group
	mu          sync.Mutex
}

// NewService создает сервис уведомлений. pageLimit - размер страницы списка.
func NewService(apiClient clientapi.ClientAPI, runner *mutation.Runner, logger *slog.Logger, pageLimit int) *Service {
	active := false
	return &Service{
		api:    apiClient,
		runner: runner,
		store:  NewStore(),
		logger: logger,
		now:    time.Now,
		filter: models.NotificationFilter{IsArchived: &active, Page: 1, Limit: pageLimit},
	}
}

// Store returns the underlying cache
func (s *Service) Store() *Store {
	return s.store
}

// DefaultFilter returns the active-list filter. Refreshes after a failed
// mutation always use it, whatever page the caller listed last.
func (s *Service) DefaultFilter() models.NotificationFilter {
	return s.filter
}

// RefreshedAt returns when the cache was last filled from the server
func (s *Service) RefreshedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.refreshedAt
}

// Restore fills the cache from a saved snapshot without touching the network
func (s *Service) Restore(items []models.Notification, agg models.NotificationAggregate, refreshedAt time.Time) {
	s.store.Replace(items, agg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshedAt = refreshedAt
}

// Refresh fetches the list and the counters concurrently and replaces the
// cache with them. Concurrent refreshes with the same filter share requests.
func (s *Service) Refresh(ctx context.Context, filter models.NotificationFilter) error {
	_, err, shared := s.flight.Do(filterKey(filter), func() (any, error) {
		return nil, s.refresh(ctx, filter)
	})
	if shared {
		s.logger.Debug("Notification refresh shared with a concurrent caller")
	}
	return err
}

func (s *Service) refresh(ctx context.Context, filter models.NotificationFilter) error {
	var (
		list  *api.NotificationListResponse
		count *api.NotificationCountResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.api.ListNotifications(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.api.CountNotifications(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to refresh notifications: %w", err)
	}

	s.store.Replace(list.Notifications, count.Aggregate())

	s.mu.Lock()
	s.refreshedAt = s.now()
	s.mu.Unlock()

	s.logger.Debug("Notifications refreshed",
		"items", len(list.Notifications),
		"unread", count.Unread,
		"total", count.Total)
	return nil
}

// List returns the active notifications, newest first
func (s *Service) List() []models.Notification {
	return s.store.Active()
}

// Aggregate returns the counters
func (s *Service) Aggregate() models.NotificationAggregate {
	return s.store.Aggregate()
}

// View returns the active list and counters as one consistent read
func (s *Service) View() ([]models.Notification, models.NotificationAggregate) {
	return s.store.View()
}

// MarkRead marks one notification read
func (s *Service) MarkRead(ctx context.Context, id string) (*mutation.Pending, error) {
	read := true
	return s.update(ctx, id, ActionMarkRead, api.NotificationUpdateRequest{IsRead: &read})
}

// MarkUnread marks one notification unread
func (s *Service) MarkUnread(ctx context.Context, id string) (*mutation.Pending, error) {
	read := false
	return s.update(ctx, id, ActionMarkUnread, api.NotificationUpdateRequest{IsRead: &read})
}

// Archive removes one notification from the active view. Archiving is one-way.
func (s *Service) Archive(ctx context.Context, id string) (*mutation.Pending, error) {
	archived := true
	return s.update(ctx, id, ActionArchive, api.NotificationUpdateRequest{IsArchived: &archived})
}

// Delete removes one notification permanently
func (s *Service) Delete(ctx context.Context, id string) (*mutation.Pending, error) {
	return s.start(ctx, id, ActionDelete, func(ctx context.Context) error {
		return s.api.DeleteNotification(ctx, id)
	})
}

// MarkAllRead marks every notification read: cached unread items in one
// batch, and the unread counters are zeroed directly.
func (s *Service) MarkAllRead(ctx context.Context) (*mutation.Pending, error) {
	ids := s.store.UnreadIDs()

	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, markAllKey)
	for _, id := range ids {
		keys = append(keys, guardKey(id))
	}

	var m *Mutation
	return s.runner.Start(ctx, mutation.Op{
		Name:     "mark all read",
		EntityID: "notifications",
		Keys:     keys,
		Apply: func() error {
			var err error
			m, err = s.store.MarkAllRead(ids, s.now())
			return err
		},
		Confirm: func(ctx context.Context) error {
			if err := s.api.MarkNotificationsRead(ctx, nil); err != nil {
				return err
			}
			s.store.Commit(m)
			return nil
		},
		Rollback: func() {
			s.store.Rollback(m)
		},
		Refresh: s.refreshAfterFailure,
	})
}

func (s *Service) update(ctx context.Context, id string, action Action, req api.NotificationUpdateRequest) (*mutation.Pending, error) {
	return s.start(ctx, id, action, func(ctx context.Context) error {
		return s.api.UpdateNotification(ctx, id, req)
	})
}

func (s *Service) start(ctx context.Context, id string, action Action, call func(ctx context.Context) error) (*mutation.Pending, error) {
	var m *Mutation
	return s.runner.Start(ctx, mutation.Op{
		Name:     strings.ReplaceAll(string(action), "_", " "),
		EntityID: id,
		Keys:     []string{guardKey(id)},
		Apply: func() error {
			var err error
			m, err = s.store.Apply(id, action, s.now())
			return err
		},
		Confirm: func(ctx context.Context) error {
			if err := call(ctx); err != nil {
				return err
			}
			s.store.Commit(m)
			return nil
		},
		Rollback: func() {
			s.store.Rollback(m)
		},
		Refresh: s.refreshAfterFailure,
	})
}

func (s *Service) refreshAfterFailure(ctx context.Context) error {
	return s.Refresh(ctx, s.DefaultFilter())
}

func guardKey(id string) string {
	return "notification:" + id
}

func filterKey(f models.NotificationFilter) string {
	var b strings.Builder
	b.WriteString("type=" + string(f.Type))
	b.WriteString("&priority=" + string(f.Priority))
	if f.IsRead != nil {
		b.WriteString("&is_read=" + strconv.FormatBool(*f.IsRead))
	}
	if f.IsArchived != nil {
		b.WriteString("&is_archived=" + strconv.FormatBool(*f.IsArchived))
	}
	b.WriteString("&page=" + strconv.Itoa(f.Page))
	b.WriteString("&limit=" + strconv.Itoa(f.Limit))
	return b.String()
}
