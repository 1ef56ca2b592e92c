package models

import (
	"fmt"
	"time"
)

// Priority уровень важности уведомления
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists all priorities from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ParsePriority validates a priority string
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// NotificationType тип события, породившего уведомление
type NotificationType string

const (
	NotificationQuestionAnswered   NotificationType = "question_answered"
	NotificationAnswerCommented    NotificationType = "answer_commented"
	NotificationUserMentioned      NotificationType = "user_mentioned"
	NotificationAnswerAccepted     NotificationType = "answer_accepted"
	NotificationQuestionUpvoted    NotificationType = "question_upvoted"
	NotificationAnswerUpvoted      NotificationType = "answer_upvoted"
	NotificationNewFollower        NotificationType = "new_follower"
	NotificationSystemAnnouncement NotificationType = "system_announcement"
)

// NotificationState - локальное состояние уведомления.
// Deleted - терминальное состояние.
type NotificationState int

const (
	StateUnread NotificationState = iota
	StateRead
	StateArchived
	StateDeleted
)

func (s NotificationState) String() string {
	switch s {
	case StateUnread:
		return "unread"
	case StateRead:
		return "read"
	case StateArchived:
		return "archived"
	case StateDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Notification представляет уведомление пользователя
type Notification struct {
	CreatedAt  time.Time        `json:"created_at"`
	ReadAt     *time.Time       `json:"read_at,omitempty"`
	ID         string           `json:"notification_id"`
	Type       NotificationType `json:"type"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	RelatedID  string           `json:"related_id,omitempty"`
	ActionURL  string           `json:"action_url,omitempty"`
	Priority   Priority         `json:"priority"`
	IsRead     bool             `json:"is_read"`
	IsArchived bool             `json:"is_archived"`
	Deleted    bool             `json:"-"` // Deleted локальный флаг до подтверждения удаления сервером
}

// State derives the state machine position from the flags
func (n Notification) State() NotificationState {
	switch {
	case n.Deleted:
		return StateDeleted
	case n.IsArchived:
		return StateArchived
	case n.IsRead:
		return StateRead
	default:
		return StateUnread
	}
}

// IsActive reports whether the notification belongs to the default (active) view
func (n Notification) IsActive() bool {
	return !n.Deleted && !n.IsArchived
}

// CountsAsUnread reports whether the notification contributes to the unread aggregate
func (n Notification) CountsAsUnread() bool {
	return n.IsActive() && !n.IsRead
}

// Clone returns a deep copy
func (n Notification) Clone() Notification {
	if n.ReadAt != nil {
		readAt := *n.ReadAt
		n.ReadAt = &readAt
	}
	return n
}

// NotificationAggregate - кэшированная проекция счётчиков по списку уведомлений.
// Не является самостоятельным источником истины.
type NotificationAggregate struct {
	ByPriority map[Priority]int `json:"by_priority"`
	Total      int              `json:"total"`
	Unread     int              `json:"unread"`
	Archived   int              `json:"archived"`
}

// Clone returns a deep copy
func (a NotificationAggregate) Clone() NotificationAggregate {
	c := a
	c.ByPriority = make(map[Priority]int, len(a.ByPriority))
	for p, n := range a.ByPriority {
		c.ByPriority[p] = n
	}
	return c
}

// NotificationFilter параметры выборки списка уведомлений
type NotificationFilter struct {
	IsRead     *bool
	IsArchived *bool
	Type       NotificationType
	Priority   Priority
	Page       int
	Limit      int
}
