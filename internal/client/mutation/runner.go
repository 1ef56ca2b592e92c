// Package mutation runs optimistic mutations: admit through the entity guard,
// apply locally, confirm with the server in the background, and roll back on
// any failure.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/iudanet/qaforum/internal/client/cache"
	"github.com/iudanet/qaforum/internal/client/guard"
)

// Op описывает одну оптимистичную мутацию
type Op struct {
	// Apply writes the optimistic state into the cache. It runs synchronously
	// inside Start; an error means nothing was written.
	Apply func() error

	// Confirm issues the authoritative request and, on success, commits the
	// server's answer into the cache.
	Confirm func(ctx context.Context) error

	// Rollback restores the state captured by Apply
	Rollback func()

	// Refresh re-fetches authoritative state after a rollback. Optional.
	Refresh func(ctx context.Context) error

	Name     string   // Name операция для логов и сообщений ("vote", "archive", ...)
	EntityID string   // EntityID сущность для логов и сообщений
	Keys     []string // Keys ключи guard; по умолчанию EntityID
}

// Authorizer answers whether the current user may mutate at all
type Authorizer interface {
	Authorize() error
}

// Option настраивает Runner
type Option func(*Runner)

// WithAuthorizer checks authorization before anything is applied
func WithAuthorizer(a Authorizer) Option {
	return func(r *Runner) {
		r.auth = a
	}
}

// WithRefreshLimit limits follow-up refreshes after failures
func WithRefreshLimit(limit rate.Limit, burst int) Option {
	return func(r *Runner) {
		r.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithFailureHandler is called for every rolled back mutation
func WithFailureHandler(h func(*Failure)) Option {
	return func(r *Runner) {
		r.onFailure = h
	}
}

// Runner выполняет оптимистичные мутации
type Runner struct {
	guard     *guard.Guard
	auth      Authorizer
	limiter   *rate.Limiter
	onFailure func(*Failure)
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// NewRunner creates a runner over g
func NewRunner(g *guard.Guard, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		guard:   g,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start admits op through the guard and applies it. When Start returns the
// optimistic state is visible to every reader; confirmation continues in the
// background and is reported through the returned Pending.
//
// A duplicate of an in-flight mutation, or a transition that changes nothing,
// yields an already resolved, skipped Pending and a nil error. A non-nil error
// means nothing was applied.
func (r *Runner) Start(ctx context.Context, op Op) (*Pending, error) {
	if r.auth != nil {
		if err := r.auth.Authorize(); err != nil {
			return nil, fmt.Errorf("%s %s: %w", op.Name, op.EntityID, err)
		}
	}

	keys := op.Keys
	if len(keys) == 0 {
		keys = []string{op.EntityID}
	}

	release, err := r.guard.AcquireAll(keys...)
	if err != nil {
		// Повторный клик - не ошибка
		r.logger.Debug("Mutation rejected, already in flight",
			"op", op.Name,
			"entity_id", op.EntityID)
		return skippedPending(uuid.New().String()), nil
	}

	if err := r.safeApply(op); err != nil {
		release()
		if errors.Is(err, cache.ErrNoChange) {
			r.logger.Debug("Mutation is a no-op", "op", op.Name, "entity_id", op.EntityID)
			return skippedPending(uuid.New().String()), nil
		}
		return nil, err
	}

	pending := newPending(uuid.New().String())

	// Запросы в полёте не прерываются отменой контекста вызывающего
	ctx = context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		err := r.reconcile(ctx, op)
		release()
		pending.resolve(err)
	}()

	return pending, nil
}

// Wait blocks until every started mutation has resolved
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) reconcile(ctx context.Context, op Op) error {
	err := r.safeConfirm(ctx, op)
	if err == nil {
		r.logger.Debug("Mutation confirmed", "op", op.Name, "entity_id", op.EntityID)
		return nil
	}

	r.safeRollback(op)

	failure := &Failure{Op: op.Name, EntityID: op.EntityID, Err: err}
	r.logger.Warn("Mutation rolled back",
		"op", op.Name,
		"entity_id", op.EntityID,
		"error", err)

	if r.onFailure != nil {
		r.onFailure(failure)
	}

	r.refreshAfterFailure(ctx, op)

	return failure
}

func (r *Runner) refreshAfterFailure(ctx context.Context, op Op) {
	if op.Refresh == nil {
		return
	}
	if !r.limiter.Allow() {
		r.logger.Debug("Refresh after failure throttled", "op", op.Name, "entity_id", op.EntityID)
		return
	}

	if err := r.protect(op, "refresh", func() error { return op.Refresh(ctx) }); err != nil {
		r.logger.Warn("Refresh after failure failed",
			"op", op.Name,
			"entity_id", op.EntityID,
			"error", err)
	}
}

func (r *Runner) safeApply(op Op) error {
	return r.protect(op, "apply", op.Apply)
}

func (r *Runner) safeConfirm(ctx context.Context, op Op) error {
	return r.protect(op, "confirm", func() error { return op.Confirm(ctx) })
}

func (r *Runner) safeRollback(op Op) {
	_ = r.protect(op, "rollback", func() error {
		op.Rollback()
		return nil
	})
}

// protect runs fn and converts a panic into an error
func (r *Runner) protect(op Op, stage string, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic recovered",
				"op", op.Name,
				"entity_id", op.EntityID,
				"stage", stage,
				"error", p,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("%s %s: panic during %s: %v", op.Name, op.EntityID, stage, p)
		}
	}()
	return fn()
}
