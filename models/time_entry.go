package models

import "time"

// TimeEntry is one clock-in/clock-out interval. DurationMinutes is filled at
// clock-out; an entry with a nil ClockOut is still running.
type TimeEntry struct {
	ID              string     `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID          string     `gorm:"type:char(36);index;not null" json:"user_id"`
	ClockIn         time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut        *time.Time `json:"clock_out,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Notes           *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	OrganizationID  string     `gorm:"type:char(36);index;not null" json:"organization_id"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
