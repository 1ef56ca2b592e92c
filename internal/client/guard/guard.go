// Package guard provides a per-entity latch that admits at most one in-flight
// mutation per entity id.
package guard

import (
	"errors"
	"sync"
)

// ErrConflict is returned when a mutation for the same entity is already in flight.
// Callers treat it as a no-op, not as a failure.
var ErrConflict = errors.New("mutation already in flight")

// Guard хранит множество id сущностей, для которых выполняется мутация
type Guard struct {
	inFlight map[string]struct{}
	mu       sync.Mutex
}

// New creates an empty guard
func New() *Guard {
	return &Guard{
		inFlight: make(map[string]struct{}),
	}
}

// TryAcquire marks id as busy. Returns false if it already is.
func (g *Guard) TryAcquire(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[id]; busy {
		return false
	}
	g.inFlight[id] = struct{}{}
	return true
}

// Release frees id. Releasing an id that is not held is a no-op.
func (g *Guard) Release(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, id)
}

// Acquire is the scoped form of TryAcquire. The returned release func is
// idempotent and must be called on every exit path, typically via defer.
func (g *Guard) Acquire(id string) (release func(), err error) {
	if !g.TryAcquire(id) {
		return nil, ErrConflict
	}
	return g.releaser([]string{id}), nil
}

// AcquireAll admits all ids or none of them
func (g *Guard) AcquireAll(ids ...string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range ids {
		if _, busy := g.inFlight[id]; busy {
			return nil, ErrConflict
		}
	}
	for _, id := range ids {
		g.inFlight[id] = struct{}{}
	}

	held := make([]string, len(ids))
	copy(held, ids)
	return g.releaser(held), nil
}

// InFlight reports whether id is currently held
func (g *Guard) InFlight(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, busy := g.inFlight[id]
	return busy
}

// Reset drops every held id. Used on sign-out.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.inFlight = make(map[string]struct{})
}

func (g *Guard) releaser(ids []string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			for _, id := range ids {
				delete(g.inFlight, id)
			}
		})
	}
}
