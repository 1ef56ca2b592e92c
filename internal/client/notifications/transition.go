package notifications

import (
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/qaforum/internal/client/cache"
	"github.com/iudanet/qaforum/internal/models"
)

// ErrInvalidTransition is returned for a transition the state machine does not allow
var ErrInvalidTransition = errors.New("invalid notification transition")

// Action - переход машины состояний уведомления
type Action string

const (
	ActionMarkRead   Action = "mark_read"
	ActionMarkUnread Action = "mark_unread"
	ActionArchive    Action = "archive"
	ActionDelete     Action = "delete"
)

// Evicts reports whether a confirmed action removes the item from the active view
func (a Action) Evicts() bool {
	return a == ActionArchive || a == ActionDelete
}

// transition возвращает функцию перехода для arena.
//
//	unread <-> read
//	unread | read -> archived
//	unread | read | archived -> deleted (конечное)
func transition(action Action, now time.Time) cache.TransitionFunc[models.Notification] {
	return func(n models.Notification) (models.Notification, error) {
		state := n.State()
		if state == models.StateDeleted {
			return n, fmt.Errorf("%w: %s is deleted", ErrInvalidTransition, n.ID)
		}

		switch action {
		case ActionMarkRead:
			switch state {
			case models.StateRead:
				return n, cache.ErrNoChange
			case models.StateArchived:
				return n, fmt.Errorf("%w: cannot mark archived %s as read", ErrInvalidTransition, n.ID)
			}
			readAt := now
			n.IsRead = true
			n.ReadAt = &readAt

		case ActionMarkUnread:
			switch state {
			case models.StateUnread:
				return n, cache.ErrNoChange
			case models.StateArchived:
				// Разархивирование не поддерживается
				return n, fmt.Errorf("%w: cannot mark archived %s as unread", ErrInvalidTransition, n.ID)
			}
			n.IsRead = false
			n.ReadAt = nil

		case ActionArchive:
			if state == models.StateArchived {
				return n, cache.ErrNoChange
			}
			n.IsArchived = true

		case ActionDelete:
			n.Deleted = true

		default:
			return n, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
		}
		return n, nil
	}
}

// markReadLenient используется для пакетной отметки: уже прочитанные не трогаем
func markReadLenient(now time.Time) cache.TransitionFunc[models.Notification] {
	strict := transition(ActionMarkRead, now)
	return func(n models.Notification) (models.Notification, error) {
		if !n.CountsAsUnread() {
			return n, nil
		}
		return strict(n)
	}
}
