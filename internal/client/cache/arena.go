// Package cache holds fetched entities in memory, indexed by id, and applies
// optimistic transitions to them with snapshot based rollback.
//
// Every write to a cached entity goes through Apply, Commit, Rollback, Put or
// Evict. Each entry carries a generation that changes when the entity is
// (re)fetched or evicted, so a response for an entity that has since been
// replaced or dropped is discarded instead of reviving stale state.
package cache

import (
	"fmt"
	"sort"
	"sync"
)

// TransitionFunc computes the next state of an entity from its current state.
// It runs under the arena lock and must not call back into the arena.
type TransitionFunc[T any] func(current T) (T, error)

// Snapshot - состояние одной незавершённой мутации.
// Принадлежит вызывающему до Commit или Rollback.
type Snapshot[T any] struct {
	Prior    T      // Prior состояние до Apply
	Applied  T      // Applied оптимистичное состояние после Apply
	EntityID string // EntityID ключ сущности в arena
	Kind     string // Kind тип мутации (для логов)
	gen      uint64
}

type entry[T any] struct {
	value T
	gen   uint64
}

// Arena is an in-memory entity store indexed by id
type Arena[T any] struct {
	entries map[string]*entry[T]
	clone   func(T) T
	nextGen uint64
	mu      sync.RWMutex
}

// New creates an empty arena. clone must return a deep copy of a value; nil
// means values are plain data and are copied by assignment.
func New[T any](clone func(T) T) *Arena[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Arena[T]{
		entries: make(map[string]*entry[T]),
		clone:   clone,
	}
}

// Put stores a server-fetched value, replacing any previous entry.
// Outstanding snapshots for id become stale.
func (a *Arena[T]) Put(id string, value T) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextGen++
	a.entries[id] = &entry[T]{value: a.clone(value), gen: a.nextGen}
}

// Get returns a copy of the cached value
func (a *Arena[T]) Get(id string) (T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	e, ok := a.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	return a.clone(e.value), true
}

// Has reports whether id is cached
func (a *Arena[T]) Has(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.entries[id]
	return ok
}

// Evict drops id from the cache. Returns false if it was not cached.
func (a *Arena[T]) Evict(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.entries[id]; !ok {
		return false
	}
	delete(a.entries, id)
	return true
}

// Reset drops every entry
func (a *Arena[T]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = make(map[string]*entry[T])
}

// Len returns the number of cached entities
func (a *Arena[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.entries)
}

// IDs returns the cached ids in sorted order
func (a *Arena[T]) IDs() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]string, 0, len(a.entries))
	for id := range a.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns copies of the values matching keep, ordered by id.
// A nil keep returns everything.
func (a *Arena[T]) List(keep func(T) bool) []T {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]string, 0, len(a.entries))
	for id := range a.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	values := make([]T, 0, len(ids))
	for _, id := range ids {
		v := a.entries[id].value
		if keep == nil || keep(v) {
			values = append(values, a.clone(v))
		}
	}
	return values
}

// Apply computes the next state of id with fn, writes it into the cache and
// returns a snapshot of the prior state. The new state is visible to all
// readers when Apply returns. On error nothing is written.
func (a *Arena[T]) Apply(id, kind string, fn TransitionFunc[T]) (*Snapshot[T], error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[id]
	if !ok {
		return nil, fmt.Errorf("apply %s to %s: %w", kind, id, ErrNotFound)
	}

	snap, next, err := a.prepare(id, kind, e, fn)
	if err != nil {
		return nil, err
	}
	e.value = next
	return snap, nil
}

// ApplyAll applies fn to every id atomically: either all transitions are
// written or none is.
func (a *Arena[T]) ApplyAll(ids []string, kind string, fn TransitionFunc[T]) ([]*Snapshot[T], error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	snaps := make([]*Snapshot[T], 0, len(ids))
	nexts := make([]T, 0, len(ids))
	for _, id := range ids {
		e, ok := a.entries[id]
		if !ok {
			return nil, fmt.Errorf("apply %s to %s: %w", kind, id, ErrNotFound)
		}
		snap, next, err := a.prepare(id, kind, e, fn)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
		nexts = append(nexts, next)
	}

	// Все переходы вычислены - записываем разом
	for i, id := range ids {
		a.entries[id].value = nexts[i]
	}
	return snaps, nil
}

func (a *Arena[T]) prepare(id, kind string, e *entry[T], fn TransitionFunc[T]) (*Snapshot[T], T, error) {
	prior := a.clone(e.value)
	next, err := fn(a.clone(e.value))
	if err != nil {
		var zero T
		return nil, zero, fmt.Errorf("apply %s to %s: %w", kind, id, err)
	}

	return &Snapshot[T]{
		Prior:    prior,
		Applied:  a.clone(next),
		EntityID: id,
		Kind:     kind,
		gen:      e.gen,
	}, next, nil
}

// Commit finishes a successful mutation. When truth is non-nil it replaces the
// optimistic value: the server's answer wins over the locally computed one.
// Returns false if the snapshot is stale (entity evicted or re-fetched), in
// which case the cache is left untouched.
func (a *Arena[T]) Commit(snap *Snapshot[T], truth *T) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.current(snap)
	if !ok {
		return false
	}
	if truth != nil {
		e.value = a.clone(*truth)
	}
	return true
}

// Rollback restores the exact prior state captured by Apply.
// Returns false if the snapshot is stale.
func (a *Arena[T]) Rollback(snap *Snapshot[T]) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.current(snap)
	if !ok {
		return false
	}
	e.value = a.clone(snap.Prior)
	return true
}

// CommitEvict finishes a successful mutation whose end state removes the
// entity from the cache (archive, delete).
func (a *Arena[T]) CommitEvict(snap *Snapshot[T]) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.current(snap); !ok {
		return false
	}
	delete(a.entries, snap.EntityID)
	return true
}

func (a *Arena[T]) current(snap *Snapshot[T]) (*entry[T], bool) {
	if snap == nil {
		return nil, false
	}
	e, ok := a.entries[snap.EntityID]
	if !ok || e.gen != snap.gen {
		return nil, false
	}
	return e, true
}
