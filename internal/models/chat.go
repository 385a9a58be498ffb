package models

import (
	"time"

	"gorm.io/gorm"
)

// Message content types.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Message represents a direct message between two users. A message is
// immutable once created except for the read_at transition (unset -> set).
type Message struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FromUserID  uint           `gorm:"not null;index" json:"from_user_id"`
	ToUserID    uint           `gorm:"not null;index" json:"to_user_id"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	ContentType string         `gorm:"not null;default:'text'" json:"content_type"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Conversation is a derived view of the message thread with one peer. It is
// computed by aggregation and never stored.
type Conversation struct {
	UserID      uint     `json:"user_id"`
	Username    string   `json:"username"`
	Avatar      string   `json:"avatar"`
	LastMessage *Message `json:"last_message,omitempty"`
	UnreadCount int      `json:"unread_count"`
}
