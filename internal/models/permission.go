package models

import (
	"time"

	"gorm.io/gorm"
)

// Permission request kinds and statuses.
const (
	PermissionKindVacation = "vacation"
	PermissionKindSick     = "sick"
	PermissionKindPersonal = "personal"

	PermissionStatusPending  = "pending"
	PermissionStatusApproved = "approved"
	PermissionStatusRejected = "rejected"
)

// ValidPermissionKind reports whether kind is recognized.
func ValidPermissionKind(kind string) bool {
	switch kind {
	case PermissionKindVacation, PermissionKindSick, PermissionKindPersonal:
		return true
	}
	return false
}

// PermissionRequest represents a time-off or absence request. Only pending
// requests may be approved or rejected.
type PermissionRequest struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Kind        string         `gorm:"not null" json:"kind"`
	StartDate   time.Time      `gorm:"not null" json:"start_date"`
	EndDate     time.Time      `gorm:"not null" json:"end_date"`
	Reason      string         `gorm:"type:text" json:"reason"`
	Status      string         `gorm:"not null;default:'pending';index" json:"status"`
	ReviewedBy  *uint          `json:"reviewed_by,omitempty"`
	ReviewNotes string         `json:"review_notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
