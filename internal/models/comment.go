package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a feed post. Comments are owned by their
// post and are removed together with it.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	Username  string         `gorm:"not null" json:"username"`
	Role      string         `gorm:"not null" json:"role"`
	Content   string         `gorm:"not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
