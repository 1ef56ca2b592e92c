package mutation

import (
	"context"
	"sync"
)

// Pending - handle незавершённой мутации.
// Локальное состояние уже применено, подтверждение сервера ещё в пути.
type Pending struct {
	err     error
	done    chan struct{}
	ID      string
	once    sync.Once
	skipped bool
}

func newPending(id string) *Pending {
	return &Pending{ID: id, done: make(chan struct{})}
}

// skippedPending returns an already resolved handle for a no-op mutation
func skippedPending(id string) *Pending {
	p := newPending(id)
	p.skipped = true
	p.resolve(nil)
	return p
}

func (p *Pending) resolve(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done is closed once the mutation is committed or rolled back
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the mutation resolves or ctx is done. It returns the
// *Failure of a rolled back mutation, nil on success or skip, or ctx.Err().
// Giving up on Wait does not cancel the mutation.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Skipped reports whether the mutation was a no-op (duplicate in flight or
// nothing to change)
func (p *Pending) Skipped() bool {
	return p.skipped
}
