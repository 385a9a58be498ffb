package models

import (
	"time"

	"gorm.io/gorm"
)

// Incident severities and statuses.
const (
	IncidentSeverityLow    = "low"
	IncidentSeverityMedium = "medium"
	IncidentSeverityHigh   = "high"

	IncidentStatusOpen         = "open"
	IncidentStatusAcknowledged = "acknowledged"
	IncidentStatusResolved     = "resolved"
)

// ValidIncidentSeverity reports whether severity is recognized.
func ValidIncidentSeverity(severity string) bool {
	switch severity {
	case IncidentSeverityLow, IncidentSeverityMedium, IncidentSeverityHigh:
		return true
	}
	return false
}

// ValidIncidentStatus reports whether status is recognized.
func ValidIncidentStatus(status string) bool {
	switch status {
	case IncidentStatusOpen, IncidentStatusAcknowledged, IncidentStatusResolved:
		return true
	}
	return false
}

// Incident represents a workplace incident report.
type Incident struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ReporterID  uint           `gorm:"not null;index" json:"reporter_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Severity    string         `gorm:"not null;default:'low'" json:"severity"`
	Status      string         `gorm:"not null;default:'open';index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
