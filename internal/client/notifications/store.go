package notifications

import (
	"sort"
	"sync"
	"time"

	"github.com/iudanet/qaforum/internal/client/cache"
	"github.com/iudanet/qaforum/internal/models"
)

// Store - кэш уведомлений и агрегированных счётчиков.
// Элементы и агрегат меняются под одной блокировкой, поэтому читатель
// никогда не видит элемент и счётчик в рассогласованном состоянии.
type Store struct {
	items *cache.Arena[models.Notification]
	agg   models.NotificationAggregate
	rev   uint64 // rev меняется при каждой записи агрегата
	mu    sync.RWMutex
}

// Mutation - незавершённое изменение одного или нескольких уведомлений
type Mutation struct {
	prior  models.NotificationAggregate
	action Action
	snaps  []*cache.Snapshot[models.Notification]
	rev    uint64
}

// NewStore создает пустой store
func NewStore() *Store {
	return &Store{
		items: cache.New[models.Notification](models.Notification.Clone),
		agg:   normalize(models.NotificationAggregate{}),
	}
}

// Replace installs a fresh server view: items and aggregate together.
// Outstanding mutations become stale.
func (s *Store) Replace(items []models.Notification, agg models.NotificationAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Reset()
	for _, n := range items {
		s.items.Put(n.ID, n)
	}
	s.agg = normalize(agg.Clone())
	s.rev++
}

// Reset drops everything
func (s *Store) Reset() {
	s.Replace(nil, models.NotificationAggregate{})
}

// Active returns the default view: items that are neither archived nor
// deleted, newest first.
func (s *Store) Active() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.active()
}

// Aggregate returns a copy of the counters
func (s *Store) Aggregate() models.NotificationAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.agg.Clone()
}

// View returns the active items and the counters as one consistent read
func (s *Store) View() ([]models.Notification, models.NotificationAggregate) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.active(), s.agg.Clone()
}

// All returns every cached item, including archived ones, ordered by id
func (s *Store) All() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.items.List(func(n models.Notification) bool { return !n.Deleted })
}

// Get returns a cached item
func (s *Store) Get(id string) (models.Notification, bool) {
	return s.items.Get(id)
}

// UnreadIDs returns ids of items counted as unread, ordered by id
func (s *Store) UnreadIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unread := s.items.List(models.Notification.CountsAsUnread)
	ids := make([]string, 0, len(unread))
	for _, n := range unread {
		ids = append(ids, n.ID)
	}
	return ids
}

// Apply performs action on one item and adjusts the counters in lockstep
func (s *Store) Apply(id string, action Action, now time.Time) (*Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.items.Apply(id, string(action), transition(action, now))
	if err != nil {
		return nil, err
	}

	m := &Mutation{
		prior:  s.agg.Clone(),
		action: action,
		snaps:  []*cache.Snapshot[models.Notification]{snap},
	}
	adjust(&s.agg, snap.Prior, snap.Applied)
	s.rev++
	m.rev = s.rev
	return m, nil
}

// MarkAllRead marks every listed item read in one step and zeroes the unread
// counters directly, so items outside the fetched page are covered too.
func (s *Store) MarkAllRead(ids []string, now time.Time) (*Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snaps, err := s.items.ApplyAll(ids, string(ActionMarkRead), markReadLenient(now))
	if err != nil {
		return nil, err
	}

	m := &Mutation{
		prior:  s.agg.Clone(),
		action: ActionMarkRead,
		snaps:  snaps,
	}
	s.agg.Unread = 0
	for p := range s.agg.ByPriority {
		s.agg.ByPriority[p] = 0
	}
	s.rev++
	m.rev = s.rev
	return m, nil
}

// Commit finishes a confirmed mutation. Archived and deleted items leave the
// cache; the counters were already adjusted by Apply.
func (s *Store) Commit(m *Mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range m.snaps {
		if m.action.Evicts() {
			s.items.CommitEvict(snap)
		} else {
			s.items.Commit(snap, nil)
		}
	}
}

// Rollback reverts a failed mutation. If nothing else wrote the counters in
// between, they are restored exactly; otherwise the inverse delta of every
// reverted item is applied.
func (s *Store) Rollback(m *Mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exact := s.rev == m.rev
	for _, snap := range m.snaps {
		if !s.items.Rollback(snap) {
			// Элемент заменён свежими данными сервера
			continue
		}
		if !exact {
			adjust(&s.agg, snap.Applied, snap.Prior)
		}
	}

	if exact {
		s.agg = m.prior.Clone()
	}
	s.rev++
}

func (s *Store) active() []models.Notification {
	items := s.items.List(models.Notification.IsActive)
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// adjust переносит изменение одного элемента before -> after в счётчики.
// Уменьшение никогда не опускает счётчик ниже нуля.
func adjust(agg *models.NotificationAggregate, before, after models.Notification) {
	if d := delta(before.CountsAsUnread(), after.CountsAsUnread()); d != 0 {
		agg.Unread = step(agg.Unread, d)
		agg.ByPriority[after.Priority] = step(agg.ByPriority[after.Priority], d)
	}
	if d := delta(isArchived(before), isArchived(after)); d != 0 {
		agg.Archived = step(agg.Archived, d)
	}
	if d := delta(!before.Deleted, !after.Deleted); d != 0 {
		agg.Total = step(agg.Total, d)
	}
}

func isArchived(n models.Notification) bool {
	return n.IsArchived && !n.Deleted
}

func delta(before, after bool) int {
	switch {
	case before && !after:
		return -1
	case !before && after:
		return 1
	default:
		return 0
	}
}

func step(n, d int) int {
	return max(0, n+d)
}

func normalize(agg models.NotificationAggregate) models.NotificationAggregate {
	if agg.ByPriority == nil {
		agg.ByPriority = make(map[models.Priority]int, len(models.Priorities))
	}
	for _, p := range models.Priorities {
		if _, ok := agg.ByPriority[p]; !ok {
			agg.ByPriority[p] = 0
		}
	}
	return agg
}
