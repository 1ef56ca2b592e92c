package api

import (
	"context"

	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI - граница согласования с сервером. Ответы сервера авторитетны.
type ClientAPI interface {
	// Vote отправляет голос и возвращает подтверждённые сервером vote_count и user_vote
	Vote(ctx context.Context, kind models.EntityKind, id string, voteType models.VoteState) (*api.VoteResponse, error)

	// RemoveVote снимает голос пользователя (повторный голос в том же направлении)
	RemoveVote(ctx context.Context, kind models.EntityKind, id string) error

	// GetVotable загружает текущее состояние вопроса или ответа
	GetVotable(ctx context.Context, kind models.EntityKind, id string) (*api.VotableResponse, error)

	// UpdateNotification меняет is_read / is_archived
	UpdateNotification(ctx context.Context, id string, req api.NotificationUpdateRequest) error

	// DeleteNotification удаляет уведомление безвозвратно
	DeleteNotification(ctx context.Context, id string) error

	// MarkNotificationsRead отмечает прочитанными указанные (или все, если ids пуст) уведомления
	MarkNotificationsRead(ctx context.Context, ids []string) error

	// ListNotifications возвращает страницу уведомлений по фильтру
	ListNotifications(ctx context.Context, filter models.NotificationFilter) (*api.NotificationListResponse, error)

	// CountNotifications возвращает агрегированные счётчики
	CountNotifications(ctx context.Context) (*api.NotificationCountResponse, error)
}
