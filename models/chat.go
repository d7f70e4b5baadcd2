package models

import "time"

type ChatRoom struct {
	ID             string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	CreatedBy      string    `gorm:"type:char(36);not null" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
	OrganizationID string    `gorm:"type:char(36);index;not null" json:"organization_id"`

	Messages []ChatMessage `gorm:"foreignKey:RoomID" json:"messages,omitempty"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}

type ChatMessage struct {
	ID             string    `gorm:"primaryKey;type:char(36)" json:"id"`
	RoomID         string    `gorm:"type:char(36);index;not null" json:"room_id"`
	UserID         string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Type           string    `gorm:"type:enum('text','file','image');default:'text'" json:"type"`
	ParentID       *string   `gorm:"type:char(36);index" json:"parent_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	OrganizationID string    `gorm:"type:char(36);index;not null" json:"organization_id"`

	Room *ChatRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
