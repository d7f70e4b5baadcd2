package models

import "time"

// TaskComment is a comment on a task (or, rarely, directly on a project).
type TaskComment struct {
	ID             string     `gorm:"primaryKey;type:char(36)" json:"id"`
	Text           string     `gorm:"type:text;not null" json:"text"`
	UserID         string     `gorm:"type:char(36);index;not null" json:"user_id"`
	UserName       string     `gorm:"size:100" json:"user_name,omitempty"`
	TaskID         *string    `gorm:"type:char(36);index" json:"task_id,omitempty"`
	ProjectID      *string    `gorm:"type:char(36);index" json:"project_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	OrganizationID string     `gorm:"type:char(36);index;not null" json:"organization_id"`
}

func (TaskComment) TableName() string {
	return "comments"
}
