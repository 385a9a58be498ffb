package models

import (
	"time"

	"gorm.io/gorm"
)

// Emojis is the fixed reaction set. Reacting with anything else is a
// validation error.
var Emojis = []string{"👍", "❤️", "🎉", "🔥", "💪"}

// ValidEmoji reports whether emoji belongs to the fixed reaction set.
func ValidEmoji(emoji string) bool {
	for _, e := range Emojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// ZeroReactionCounts returns a counts map with every emoji present at zero.
func ZeroReactionCounts() map[string]int {
	counts := make(map[string]int, len(Emojis))
	for _, e := range Emojis {
		counts[e] = 0
	}
	return counts
}

// Post represents an internal feed post. Author identity (username, role,
// group, client) is denormalized at creation time so the feed renders
// historical posts as they were authored.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Username  string         `gorm:"not null" json:"username"`
	Role      string         `gorm:"not null" json:"role"`
	Group     string         `gorm:"column:work_group;index" json:"group"`
	Client    string         `json:"client"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Enriched at query time, never persisted.
	Comments       []Comment      `gorm:"foreignKey:PostID" json:"comments"`
	ReactionCounts map[string]int `gorm:"-" json:"reaction_counts"`
	MyReaction     *string        `gorm:"-" json:"my_reaction"`
}

// Reaction stores a user's single reaction to a post. The unique index over
// (post_id, user_id) enforces the one-reaction-per-user invariant at the
// storage layer: switching emojis is an update, not a second row.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user" json:"user_id"`
	Emoji     string    `gorm:"not null" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionResult is the payload returned by the react endpoint.
type ReactionResult struct {
	ReactionCounts map[string]int `json:"reaction_counts"`
	MyReaction     *string        `json:"my_reaction"`
}
