package service

import (
	"context"
	"strings"

	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
)

// IncidentService implements workplace incident reports.
type IncidentService struct {
	incidents repository.IncidentRepository
}

// NewIncidentService returns a new IncidentService.
func NewIncidentService(incidents repository.IncidentRepository) *IncidentService {
	return &IncidentService{incidents: incidents}
}

// CreateIncidentInput carries the fields accepted when reporting an incident.
type CreateIncidentInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Create files a new incident report. New incidents always start open.
func (s *IncidentService) Create(ctx context.Context, reporterID uint, in CreateIncidentInput) (*models.Incident, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, models.NewValidationError("Incident title is required")
	}
	if in.Severity == "" {
		in.Severity = models.IncidentSeverityLow
	}
	if !models.ValidIncidentSeverity(in.Severity) {
		return nil, models.NewValidationError("Unknown incident severity")
	}

	incident := &models.Incident{
		ReporterID:  reporterID,
		Title:       in.Title,
		Description: in.Description,
		Severity:    in.Severity,
		Status:      models.IncidentStatusOpen,
	}
	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// List returns incidents visible to the actor. Staff see every report,
// optionally filtered by status; employees see only their own.
func (s *IncidentService) List(ctx context.Context, actor *models.User, status string, limit, offset int) ([]models.Incident, error) {
	if status != "" && !models.ValidIncidentStatus(status) {
		return nil, models.NewValidationError("Unknown incident status")
	}

	var (
		incidents []models.Incident
		err       error
	)
	if actor.IsStaff() {
		incidents, err = s.incidents.List(ctx, status, limit, offset)
	} else {
		incidents, err = s.incidents.ListByReporter(ctx, actor.ID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}
	return incidents, nil
}

// UpdateStatus transitions an incident. Staff only.
func (s *IncidentService) UpdateStatus(ctx context.Context, actor *models.User, id uint, status string) (*models.Incident, error) {
	if !actor.IsStaff() {
		return nil, models.NewForbiddenError("Only staff can update incidents")
	}
	if !models.ValidIncidentStatus(status) {
		return nil, models.NewValidationError("Unknown incident status")
	}

	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	incident.Status = status
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// Delete removes an incident report. Admin only.
func (s *IncidentService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if !actor.IsAdmin() {
		return models.NewForbiddenError("Only admins can delete incidents")
	}
	if _, err := s.incidents.GetByID(ctx, id); err != nil {
		return err
	}
	return s.incidents.Delete(ctx, id)
}
