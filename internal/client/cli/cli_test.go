package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/qaforum/internal/client/api"
	"github.com/iudanet/qaforum/internal/client/app"
	"github.com/iudanet/qaforum/internal/client/iocli"
	"github.com/iudanet/qaforum/internal/client/session"
	"github.com/iudanet/qaforum/internal/client/storage/boltdb"
	"github.com/iudanet/qaforum/internal/config"
	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/pkg/api"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// harness запускает CLI против временной BoltDB и мока API
type harness struct {
	t     *testing.T
	mock  *clientapi.ClientAPIMock
	dir   string
	token string
	out   bytes.Buffer
	logs  bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, key := range []string{config.EnvServer, config.EnvToken, config.EnvDB, config.EnvLogLevel} {
		t.Setenv(key, "")
	}
	return &harness{t: t, mock: forumMock(), dir: t.TempDir(), token: "test-token"}
}

func (h *harness) run(args ...string) error {
	return h.runWithIO(iocli.New(strings.NewReader(""), &h.out), args...)
}

func (h *harness) runWithIO(cliIO iocli.IO, args ...string) error {
	h.t.Helper()

	opts := Options{
		IO:        cliIO,
		LogOutput: &h.logs,
		Now:       func() time.Time { return testNow },
		OpenApp: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, error) {
			store, err := boltdb.New(ctx, cfg.DBPath)
			if err != nil {
				return nil, err
			}
			return app.New(cfg, logger, session.New(""), store, h.mock), nil
		},
	}

	base := []string{
		"--config", filepath.Join(h.dir, "absent.yaml"),
		"--db", filepath.Join(h.dir, "qa.db"),
	}
	if h.token != "" {
		base = append(base, "--token", h.token)
	}
	return Run(context.Background(), append(base, args...), "test", opts)
}

func (h *harness) assertGolden(name string) {
	h.t.Helper()

	g := goldie.New(h.t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(h.t, name, h.out.Bytes())
}

func voteResponse(count int, state models.VoteState) *api.VoteResponse {
	return &api.VoteResponse{VoteCount: &count, UserVote: &state}
}

func forumMock() *clientapi.ClientAPIMock {
	return &clientapi.ClientAPIMock{
		GetVotableFunc: func(ctx context.Context, kind models.EntityKind, id string) (*api.VotableResponse, error) {
			if kind == models.KindAnswer {
				return &api.VotableResponse{AnswerID: id, VoteCount: 1234, UserVote: models.VoteDown}, nil
			}
			return &api.VotableResponse{QuestionID: id, Title: "How do I use channels?", VoteCount: 5}, nil
		},
		VoteFunc: func(ctx context.Context, kind models.EntityKind, id string, voteType models.VoteState) (*api.VoteResponse, error) {
			return voteResponse(6, models.VoteUp), nil
		},
		RemoveVoteFunc: func(ctx context.Context, kind models.EntityKind, id string) error {
			return nil
		},
		ListNotificationsFunc: func(ctx context.Context, filter models.NotificationFilter) (*api.NotificationListResponse, error) {
			return &api.NotificationListResponse{Notifications: []models.Notification{
				{
					ID:        "n1",
					Type:      models.NotificationQuestionAnswered,
					Title:     "Your question has a new answer",
					Message:   `alice answered "How do I use channels?"`,
					Priority:  models.PriorityHigh,
					CreatedAt: testNow.Add(-time.Minute),
				},
				{
					ID:        "n2",
					Type:      models.NotificationAnswerUpvoted,
					Title:     "Your answer was upvoted",
					Priority:  models.PriorityLow,
					CreatedAt: testNow.Add(-2 * time.Hour),
				},
				{
					ID:        "n3",
					Type:      models.NotificationUserMentioned,
					Title:     "You were mentioned",
					Priority:  models.PriorityMedium,
					CreatedAt: testNow.Add(-3 * 24 * time.Hour),
				},
				{
					ID:        "n4",
					Type:      models.NotificationSystemAnnouncement,
					Title:     "Welcome to the forum",
					Priority:  models.PriorityLow,
					CreatedAt: testNow.Add(-5 * 24 * time.Hour),
					IsRead:    true,
				},
			}, Total: 4, Page: 1, Limit: 20}, nil
		},
		CountNotificationsFunc: func(ctx context.Context) (*api.NotificationCountResponse, error) {
			return &api.NotificationCountResponse{
				Total:  4,
				Unread: 3,
				ByPriority: map[models.Priority]int{
					models.PriorityLow:    1,
					models.PriorityMedium: 1,
					models.PriorityHigh:   1,
				},
			}, nil
		},
		UpdateNotificationFunc: func(ctx context.Context, id string, req api.NotificationUpdateRequest) error {
			return nil
		},
		DeleteNotificationFunc: func(ctx context.Context, id string) error {
			return nil
		},
		MarkNotificationsReadFunc: func(ctx context.Context, ids []string) error {
			return nil
		},
	}
}

func TestCLI_Golden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "notifications_list", args: []string{"notifications", "list"}},
		{name: "notifications_archive", args: []string{"notifications", "archive", "n1"}},
		{name: "notifications_read_all", args: []string{"notifications", "read-all"}},
		{name: "notifications_count", args: []string{"notifications", "count"}},
		{name: "vote_up", args: []string{"vote", "up", "question", "q1"}},
		{name: "show_answer", args: []string{"show", "answer", "a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.run(tt.args...))
			h.assertGolden(tt.name)
		})
	}
}

func TestCLI_VoteFailure(t *testing.T) {
	h := newHarness(t)
	h.mock.VoteFunc = func(ctx context.Context, kind models.EntityKind, id string, voteType models.VoteState) (*api.VoteResponse, error) {
		return nil, fmt.Errorf("%w: connection refused", clientapi.ErrNetworkFailure)
	}

	err := h.run("vote", "up", "question", "q1")
	require.Error(t, err)
	assert.Equal(t, "vote question:q1 failed: could not reach the server, please try again", err.Error())
	assert.Empty(t, h.out.String())
	assert.Contains(t, h.logs.String(), "Mutation rolled back")
}

func TestCLI_RepeatedVoteClearsIt(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("vote", "up", "question", "q1"))

	h.out.Reset()
	require.NoError(t, h.run("vote", "up", "question", "q1"))

	assert.Equal(t, "question q1: How do I use channels?\n  score: 5\n", h.out.String())
	assert.Len(t, h.mock.VoteCalls(), 1)
	require.Len(t, h.mock.RemoveVoteCalls(), 1)
	assert.Equal(t, "q1", h.mock.RemoveVoteCalls()[0].ID)
}

func TestCLI_VoteRequiresToken(t *testing.T) {
	h := newHarness(t)
	h.token = ""

	err := h.run("vote", "down", "answer", "a1")
	require.ErrorIs(t, err, clientapi.ErrUnauthorized)
	assert.Empty(t, h.mock.VoteCalls())
}

func TestCLI_InvalidArgs(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"bad direction", []string{"vote", "sideways", "question", "q1"}, `unknown vote "sideways"`},
		{"bad kind", []string{"vote", "up", "comment", "c1"}, `unknown entity kind "comment"`},
		{"bad id", []string{"show", "question", "../admin"}, "invalid question id"},
		{"bad priority", []string{"notifications", "list", "--priority", "critical"}, `unknown priority "critical"`},
		{"bad page", []string{"notifications", "list", "--page", "0"}, "page must be at least 1"},
		{"unknown notification", []string{"notifications", "read", "n99"}, "notification n99 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCLI_ListFilters(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("notifications", "list", "--unread", "--priority", "high", "--type", "question_answered", "--page", "2"))

	calls := h.mock.ListNotificationsCalls()
	require.Len(t, calls, 1)
	filter := calls[0].Filter
	require.NotNil(t, filter.IsRead)
	assert.False(t, *filter.IsRead)
	require.NotNil(t, filter.IsArchived)
	assert.False(t, *filter.IsArchived)
	assert.Equal(t, models.PriorityHigh, filter.Priority)
	assert.Equal(t, models.NotificationQuestionAnswered, filter.Type)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 20, filter.Limit)
}

func TestCLI_CachedListUsesWarmStart(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("notifications", "list"))

	h.out.Reset()
	require.NoError(t, h.run("notifications", "list", "--cached"))

	assert.Len(t, h.mock.ListNotificationsCalls(), 1, "second run is served from the local database")
	h.assertGolden("notifications_list")
}

func TestCLI_DeleteConfirmation(t *testing.T) {
	t.Run("non-interactive requires --yes", func(t *testing.T) {
		h := newHarness(t)
		err := h.run("notifications", "delete", "n2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "without --yes")
		assert.Empty(t, h.mock.DeleteNotificationCalls())
	})

	t.Run("declined", func(t *testing.T) {
		h := newHarness(t)
		var printed []string
		mockIO := &iocli.IOMock{
			OutFunc:           func() io.Writer { return &h.out },
			IsInteractiveFunc: func() bool { return true },
			ConfirmFunc: func(prompt string) (bool, error) {
				return false, nil
			},
			PrintlnFunc: func(a ...any) {
				printed = append(printed, fmt.Sprint(a...))
			},
		}

		require.NoError(t, h.runWithIO(mockIO, "notifications", "delete", "n2"))
		assert.Equal(t, []string{"Cancelled"}, printed)
		require.Len(t, mockIO.ConfirmCalls(), 1)
		assert.Equal(t, "Delete notification n2 permanently?", mockIO.ConfirmCalls()[0].Prompt)
		assert.Empty(t, h.mock.DeleteNotificationCalls())
	})

	t.Run("with --yes", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.run("notifications", "delete", "n2", "--yes"))

		calls := h.mock.DeleteNotificationCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, "n2", calls[0].ID)
		assert.Contains(t, h.out.String(), "Notification n2 deleted")
		assert.Contains(t, h.out.String(), "Unread: 2  Total: 3  Archived: 0")
	})
}

func TestCLI_MarkReadAlreadyRead(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("notifications", "read", "n4"))

	assert.Equal(t, "Notification n4: nothing to change\n", h.out.String())
	assert.Empty(t, h.mock.UpdateNotificationCalls())
}

func TestCLI_LoginLogout(t *testing.T) {
	h := newHarness(t)
	h.token = ""

	mockIO := &iocli.IOMock{
		OutFunc: func() io.Writer { return &h.out },
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "  stored-token \n", nil
		},
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(&h.out, a...)
		},
	}
	require.NoError(t, h.runWithIO(mockIO, "login"))
	assert.Equal(t, "Token saved\n", h.out.String())

	// Следующий запуск берёт токен из локальной базы
	require.NoError(t, h.run("vote", "up", "question", "q1"))
	require.Len(t, h.mock.VoteCalls(), 1)

	h.out.Reset()
	require.NoError(t, h.run("logout"))
	assert.Equal(t, "Signed out, local data cleared\n", h.out.String())

	err := h.run("vote", "up", "question", "q1")
	require.ErrorIs(t, err, clientapi.ErrUnauthorized)
}

func TestCLI_LoginEmptyToken(t *testing.T) {
	h := newHarness(t)
	mockIO := &iocli.IOMock{
		OutFunc: func() io.Writer { return &h.out },
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "   ", nil
		},
	}

	err := h.runWithIO(mockIO, "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token cannot be empty")
}

func TestCLI_Version(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("--version"))
	assert.Equal(t, "qaforum version test\n", h.out.String())
}
