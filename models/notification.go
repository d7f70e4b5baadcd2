package models

import "time"

type Notification struct {
	ID             string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID         string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Content        *string   `gorm:"type:text" json:"content,omitempty"`
	Type           string    `gorm:"size:50;not null" json:"type"`
	Read           bool      `gorm:"default:false" json:"read"`
	TaskID         *string   `gorm:"type:char(36)" json:"task_id,omitempty"`
	EventID        *string   `gorm:"type:char(36)" json:"event_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	OrganizationID string    `gorm:"type:char(36);index;not null" json:"organization_id"`
}

func (Notification) TableName() string {
	return "notifications"
}
