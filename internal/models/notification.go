package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    NotificationType `gorm:"type:varchar(50);not null" json:"type"` // "blood_request", "event", "system"
	Title   string           `gorm:"size:200;not null" json:"title"`
	Message string           `gorm:"type:text;not null" json:"message"`
	Data    datatypes.JSON   `gorm:"type:jsonb" json:"data,omitempty"` // {"request_id": "..."}
	IsRead  bool             `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time       `json:"read_at,omitempty"`
}
