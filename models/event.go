package models

import "time"

// Event is a calendar entry owned by a user.
type Event struct {
	ID             string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`
	StartDate      time.Time `gorm:"not null" json:"start_date"`
	EndDate        time.Time `gorm:"not null" json:"end_date"`
	UserID         string    `gorm:"type:char(36);index;not null" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	OrganizationID string    `gorm:"type:char(36);index;not null" json:"organization_id"`
}

func (Event) TableName() string {
	return "events"
}
