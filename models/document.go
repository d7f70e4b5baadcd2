package models

import "time"

// Document is file metadata; the bytes live in object storage under StorageKey.
type Document struct {
	ID             string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`
	FileType       string    `gorm:"size:100" json:"file_type"`
	SizeBytes      int64     `json:"size_bytes"`
	Folder         *string   `gorm:"size:255" json:"folder,omitempty"`
	StorageKey     string    `gorm:"size:255;not null" json:"storage_key"`
	UserID         string    `gorm:"type:char(36);index;not null" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	OrganizationID string    `gorm:"type:char(36);index;not null" json:"organization_id"`
}

func (Document) TableName() string {
	return "documents"
}
