package storage

import (
	"context"

	"github.com/iudanet/qaforum/internal/models"
)

// CacheStorage сохраняет подтверждённое состояние кэша для тёплого старта.
// Хранятся только подтверждённые сервером значения, без незавершённых мутаций.
type CacheStorage interface {
	// SaveVotables replaces the stored questions and answers
	SaveVotables(ctx context.Context, votables []models.Votable) error

	// LoadVotables returns stored questions and answers; empty if none
	LoadVotables(ctx context.Context) ([]models.Votable, error)

	// SaveNotifications replaces the stored notification list and counters
	SaveNotifications(ctx context.Context, snapshot *NotificationSnapshot) error

	// LoadNotifications returns ErrSnapshotNotFound if nothing was saved
	LoadNotifications(ctx context.Context) (*NotificationSnapshot, error)

	// Clear removes every cached entity
	Clear(ctx context.Context) error
}

// NotificationSnapshot - список уведомлений и счётчики, сохранённые вместе
type NotificationSnapshot struct {
	Aggregate models.NotificationAggregate `json:"aggregate"`
	Items     []models.Notification        `json:"items"`
}
