package dto

import (
	"bloodbank_backend/internal/models"
)

type NotificationCriteria struct {
	UnreadOnly bool                    `form:"unread_only"`
	Type       models.NotificationType `form:"type"`
	Page       int                     `form:"page"`
	PageSize   int                     `form:"page_size"`
}

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
	TotalPages    int                   `json:"total_pages"`
}
