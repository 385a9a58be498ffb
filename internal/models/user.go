package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles recognized by the application.
const (
	RoleEmployee   = "employee"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// User represents a staff member in the Shiftdesk application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"not null;default:'employee'" json:"role"`
	Group     string         `gorm:"column:work_group;index" json:"group"`
	Client    string         `json:"client"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsStaff reports whether the user is a supervisor or admin.
func (u *User) IsStaff() bool { return u.Role == RoleAdmin || u.Role == RoleSupervisor }
