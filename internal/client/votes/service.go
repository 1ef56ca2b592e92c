// Package votes keeps cached questions and answers and casts votes on them
// optimistically.
package votes

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	clientapi "github.com/iudanet/qaforum/internal/client/api"
	"github.com/iudanet/qaforum/internal/client/cache"
	"github.com/iudanet/qaforum/internal/client/mutation"
	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/internal/vote"
	"github.com/iudanet/qaforum/pkg/api"
)

// Service сервис голосования
type Service struct {
	api      clientapi.ClientAPI
	runner   *mutation.Runner
	votables *cache.Arena[models.Votable]
	logger   *slog.Logger
	flight   singleflight.Group
}

// NewService создает сервис голосования
func NewService(apiClient clientapi.ClientAPI, runner *mutation.Runner, logger *slog.Logger) *Service {
	return &Service{
		api:      apiClient,
		runner:   runner,
		votables: cache.New[models.Votable](nil),
		logger:   logger,
	}
}

// Vote applies the requested vote locally and confirms it with the server in
// the background. Voting the same direction again clears the vote.
//
// The entity is fetched first if it is not cached yet.
func (s *Service) Vote(ctx context.Context, kind models.EntityKind, id string, requested models.VoteState) (*mutation.Pending, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("vote on %s %s: unknown entity kind", kind, id)
	}
	if !requested.IsDirection() {
		return nil, fmt.Errorf("vote on %s %s: vote type must be upvote or downvote", kind, id)
	}

	key := models.VotableKey(kind, id)
	if !s.votables.Has(key) {
		if _, err := s.Load(ctx, kind, id); err != nil {
			return nil, err
		}
	}

	var snap *cache.Snapshot[models.Votable]
	return s.runner.Start(ctx, mutation.Op{
		Name:     "vote",
		EntityID: key,
		Apply: func() error {
			var err error
			snap, err = s.votables.Apply(key, "vote", func(v models.Votable) (models.Votable, error) {
				return vote.Apply(v, requested)
			})
			return err
		},
		Confirm: func(ctx context.Context) error {
			truth, err := s.confirm(ctx, kind, id, requested, snap.Applied)
			if err != nil {
				return err
			}
			if !s.votables.Commit(snap, truth) {
				s.logger.Debug("Discarding vote response for replaced entity", "entity_id", key)
			}
			return nil
		},
		Rollback: func() {
			if !s.votables.Rollback(snap) {
				s.logger.Debug("Skipping rollback for replaced entity", "entity_id", key)
			}
		},
		Refresh: func(ctx context.Context) error {
			_, err := s.Load(ctx, kind, id)
			return err
		},
	})
}

// confirm sends the vote to the server. It returns the server's state of the
// entity, or nil when the response carries none.
func (s *Service) confirm(ctx context.Context, kind models.EntityKind, id string, requested models.VoteState, applied models.Votable) (*models.Votable, error) {
	// Повторный голос в том же направлении снимает голос
	if applied.UserVote == models.VoteNone {
		return nil, s.api.RemoveVote(ctx, kind, id)
	}

	resp, err := s.api.Vote(ctx, kind, id, requested)
	if err != nil {
		return nil, err
	}
	return serverTruth(applied, resp), nil
}

// Get returns the cached entity, fetching it when absent
func (s *Service) Get(ctx context.Context, kind models.EntityKind, id string) (models.Votable, error) {
	if v, ok := s.votables.Get(models.VotableKey(kind, id)); ok {
		return v, nil
	}
	return s.Load(ctx, kind, id)
}

// Load fetches the entity from the server and replaces the cached copy.
// Concurrent loads of the same entity share one request.
func (s *Service) Load(ctx context.Context, kind models.EntityKind, id string) (models.Votable, error) {
	key := models.VotableKey(kind, id)

	res, err, _ := s.flight.Do(key, func() (any, error) {
		resp, err := s.api.GetVotable(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		v := fromResponse(kind, id, resp)
		s.votables.Put(key, v)
		return v, nil
	})
	if err != nil {
		return models.Votable{}, fmt.Errorf("failed to load %s %s: %w", kind, id, err)
	}
	return res.(models.Votable), nil
}

// Cached returns the cached entity without touching the network
func (s *Service) Cached(kind models.EntityKind, id string) (models.Votable, bool) {
	return s.votables.Get(models.VotableKey(kind, id))
}

// All returns every cached entity ordered by key
func (s *Service) All() []models.Votable {
	return s.votables.List(nil)
}

// Seed stores an entity fetched elsewhere (list pages, warm start)
func (s *Service) Seed(v models.Votable) {
	s.votables.Put(v.CacheKey(), v)
}

// Evict drops the entity from the cache
func (s *Service) Evict(kind models.EntityKind, id string) {
	s.votables.Evict(models.VotableKey(kind, id))
}

// Reset drops every cached entity
func (s *Service) Reset() {
	s.votables.Reset()
}

// serverTruth overlays the fields the server sent on the optimistic state.
// Ответ сервера важнее локального расчёта.
func serverTruth(applied models.Votable, resp *api.VoteResponse) *models.Votable {
	if !resp.HasState() {
		return nil
	}

	truth := applied
	if resp.VoteCount != nil {
		truth.VoteCount = *resp.VoteCount
	}
	if resp.UserVote != nil {
		truth.UserVote = *resp.UserVote
	}
	return &truth
}

func fromResponse(kind models.EntityKind, id string, resp *api.VotableResponse) models.Votable {
	return models.Votable{
		ID:        id,
		Kind:      kind,
		Title:     resp.Title,
		VoteCount: resp.VoteCount,
		UserVote:  resp.UserVote,
	}
}
