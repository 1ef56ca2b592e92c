package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/internal/vote"
)

func newVotableArena() *Arena[models.Votable] {
	a := New[models.Votable](nil)
	a.Put("q1", models.Votable{ID: "q1", Kind: models.KindQuestion, VoteCount: 5})
	return a
}

func upvote(v models.Votable) (models.Votable, error) {
	return vote.Apply(v, models.VoteUp)
}

func TestArena_ApplyCommit(t *testing.T) {
	a := newVotableArena()

	snap, err := a.Apply("q1", "vote", upvote)
	require.NoError(t, err)

	// оптимистичное состояние видно сразу
	got, ok := a.Get("q1")
	require.True(t, ok)
	assert.Equal(t, 6, got.VoteCount)
	assert.Equal(t, models.VoteUp, got.UserVote)
	assert.Equal(t, 5, snap.Prior.VoteCount)
	assert.Equal(t, 6, snap.Applied.VoteCount)

	// сервер подтверждает то же значение
	truth := snap.Applied
	assert.True(t, a.Commit(snap, &truth))

	got, _ = a.Get("q1")
	assert.Equal(t, 6, got.VoteCount)
	assert.Equal(t, models.VoteUp, got.UserVote)
}

func TestArena_CommitServerTruthWins(t *testing.T) {
	a := newVotableArena()

	snap, err := a.Apply("q1", "vote", upvote)
	require.NoError(t, err)

	// другой пользователь проголосовал одновременно
	truth := snap.Applied
	truth.VoteCount = 9
	require.True(t, a.Commit(snap, &truth))

	got, _ := a.Get("q1")
	assert.Equal(t, 9, got.VoteCount)
}

func TestArena_CommitWithoutTruthKeepsOptimistic(t *testing.T) {
	a := newVotableArena()

	snap, err := a.Apply("q1", "vote", upvote)
	require.NoError(t, err)
	require.True(t, a.Commit(snap, nil))

	got, _ := a.Get("q1")
	assert.Equal(t, 6, got.VoteCount)
}

func TestArena_RollbackRestoresExactPriorState(t *testing.T) {
	a := newVotableArena()
	before, _ := a.Get("q1")

	snap, err := a.Apply("q1", "vote", upvote)
	require.NoError(t, err)

	assert.True(t, a.Rollback(snap))

	after, _ := a.Get("q1")
	assert.Equal(t, before, after)
}

func TestArena_ApplyErrorWritesNothing(t *testing.T) {
	a := newVotableArena()
	before, _ := a.Get("q1")

	boom := errors.New("boom")
	_, err := a.Apply("q1", "vote", func(v models.Votable) (models.Votable, error) {
		v.VoteCount = 100
		return v, boom
	})
	require.ErrorIs(t, err, boom)

	after, _ := a.Get("q1")
	assert.Equal(t, before, after)
}

func TestArena_ApplyMissing(t *testing.T) {
	a := New[models.Votable](nil)

	_, err := a.Apply("missing", "vote", upvote)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArena_LateResponseAfterEvictIsDiscarded(t *testing.T) {
	a := newVotableArena()

	snap, err := a.Apply("q1", "vote", upvote)
	require.NoError(t, err)

	// пользователь ушёл со страницы
	require.True(t, a.Evict("q1"))

	truth := snap.Applied
	assert.False(t, a.Commit(snap, &truth))
	assert.False(t, a.Rollback(snap))
	assert.False(t, a.Has("q1"), "stale response must not revive the entity")
}

func TestArena_LateResponseAfterRefetchIsDiscarded(t *testing.T) {
	a := newVotableArena()

	snap, err := a.Apply("q1", "vote", upvote)
	require.NoError(t, err)

	fresh := models.Votable{ID: "q1", Kind: models.KindQuestion, VoteCount: 42, UserVote: models.VoteDown}
	a.Put("q1", fresh)

	assert.False(t, a.Rollback(snap))
	got, _ := a.Get("q1")
	assert.Equal(t, fresh, got)
}

func TestArena_ApplyAllIsAtomic(t *testing.T) {
	a := New[models.Notification](models.Notification.Clone)
	a.Put("n1", models.Notification{ID: "n1"})
	a.Put("n2", models.Notification{ID: "n2", IsArchived: true})
	a.Put("n3", models.Notification{ID: "n3"})

	markRead := func(n models.Notification) (models.Notification, error) {
		if n.IsArchived {
			return n, errors.New("archived")
		}
		n.IsRead = true
		return n, nil
	}

	_, err := a.ApplyAll([]string{"n1", "n2", "n3"}, "read", markRead)
	require.Error(t, err)

	for _, id := range []string{"n1", "n3"} {
		n, _ := a.Get(id)
		assert.False(t, n.IsRead, "no partial application for %s", id)
	}

	snaps, err := a.ApplyAll([]string{"n1", "n3"}, "read", markRead)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	for _, s := range snaps {
		assert.True(t, a.Rollback(s))
	}
	n1, _ := a.Get("n1")
	assert.False(t, n1.IsRead)
}

func TestArena_CommitEvict(t *testing.T) {
	a := New[models.Notification](models.Notification.Clone)
	a.Put("n1", models.Notification{ID: "n1"})

	snap, err := a.Apply("n1", "delete", func(n models.Notification) (models.Notification, error) {
		n.Deleted = true
		return n, nil
	})
	require.NoError(t, err)

	assert.True(t, a.CommitEvict(snap))
	assert.False(t, a.Has("n1"))
	assert.False(t, a.CommitEvict(snap))
}

func TestArena_CloneIsolation(t *testing.T) {
	a := New[models.Notification](models.Notification.Clone)
	a.Put("n1", models.Notification{ID: "n1"})

	snap, err := a.Apply("n1", "read", func(n models.Notification) (models.Notification, error) {
		n.IsRead = true
		return n, nil
	})
	require.NoError(t, err)

	// изменение снапшота вызывающим не влияет на кэш
	snap.Applied.Title = "mutated"
	got, _ := a.Get("n1")
	assert.Empty(t, got.Title)
}

func TestArena_ListAndReset(t *testing.T) {
	a := New[models.Votable](nil)
	a.Put("b", models.Votable{ID: "b", VoteCount: 2})
	a.Put("a", models.Votable{ID: "a", VoteCount: 1})
	a.Put("c", models.Votable{ID: "c", VoteCount: -1})

	all := a.List(nil)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, []string{"a", "b", "c"}, a.IDs())

	positive := a.List(func(v models.Votable) bool { return v.VoteCount > 0 })
	assert.Len(t, positive, 2)

	a.Reset()
	assert.Equal(t, 0, a.Len())
}
