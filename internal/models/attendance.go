package models

import (
	"time"

	"gorm.io/gorm"
)

// Break kinds.
const (
	BreakKindLunch = "lunch"
	BreakKindShort = "short"
)

// AttendanceRecord represents one clock-in/clock-out cycle. A record with a
// nil ClockOut is the user's open shift; at most one open record exists per
// user.
type AttendanceRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ClockIn   time.Time      `gorm:"not null" json:"clock_in"`
	ClockOut  *time.Time     `json:"clock_out,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Breaks []BreakRecord `gorm:"foreignKey:AttendanceID" json:"breaks,omitempty"`
}

// BreakRecord represents a break within an attendance record. A nil EndedAt
// marks the open break.
type BreakRecord struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AttendanceID uint       `gorm:"not null;index" json:"attendance_id"`
	Kind         string     `gorm:"not null;default:'short'" json:"kind"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
