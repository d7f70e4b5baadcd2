package models

import "time"

// Organization is the tenant boundary. Every record and user belongs to exactly one.
type Organization struct {
	ID         string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	InviteCode string    `gorm:"size:20;uniqueIndex;not null" json:"invite_code"`
	CreatedBy  string    `gorm:"type:char(36);not null" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (Organization) TableName() string {
	return "organizations"
}
