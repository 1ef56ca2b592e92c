package api

import "github.com/iudanet/qaforum/internal/models"

// NotificationUpdateRequest тело запроса PATCH /api/v1/notifications/{id}
type NotificationUpdateRequest struct {
	IsRead     *bool `json:"is_read,omitempty"`
	IsArchived *bool `json:"is_archived,omitempty"`
}

// NotificationListResponse ответ GET /api/v1/notifications
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int                   `json:"total"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
	HasNext       bool                  `json:"has_next"`
	HasPrev       bool                  `json:"has_prev"`
}

// NotificationCountResponse ответ GET /api/v1/notifications/count
type NotificationCountResponse struct {
	ByPriority map[models.Priority]int `json:"by_priority"`
	Total      int                     `json:"total"`
	Unread     int                     `json:"unread"`
	Archived   int                     `json:"archived"`
}

// Aggregate converts the response into the client-side projection
func (r NotificationCountResponse) Aggregate() models.NotificationAggregate {
	agg := models.NotificationAggregate{
		Total:      r.Total,
		Unread:     r.Unread,
		Archived:   r.Archived,
		ByPriority: make(map[models.Priority]int, len(models.Priorities)),
	}
	for _, p := range models.Priorities {
		agg.ByPriority[p] = r.ByPriority[p]
	}
	return agg
}
