package service

import (
	"context"
	"time"

	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
)

// PermissionService implements time-off and absence requests.
type PermissionService struct {
	permissions repository.PermissionRepository
}

// NewPermissionService returns a new PermissionService.
func NewPermissionService(permissions repository.PermissionRepository) *PermissionService {
	return &PermissionService{permissions: permissions}
}

// CreatePermissionInput carries the fields accepted when filing a request.
type CreatePermissionInput struct {
	Kind      string    `json:"kind"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

// Create files a new request. Requests always start pending.
func (s *PermissionService) Create(ctx context.Context, userID uint, in CreatePermissionInput) (*models.PermissionRequest, error) {
	if !models.ValidPermissionKind(in.Kind) {
		return nil, models.NewValidationError("Unknown permission kind")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, models.NewValidationError("Start and end dates are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, models.NewValidationError("End date cannot be before start date")
	}

	req := &models.PermissionRequest{
		UserID:    userID,
		Kind:      in.Kind,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Reason:    in.Reason,
		Status:    models.PermissionStatusPending,
	}
	if err := s.permissions.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListMine returns the user's own requests, newest first.
func (s *PermissionService) ListMine(ctx context.Context, userID uint, limit, offset int) ([]models.PermissionRequest, error) {
	reqs, err := s.permissions.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []models.PermissionRequest{}
	}
	return reqs, nil
}

// ListPending returns requests awaiting review, oldest first. Staff only.
func (s *PermissionService) ListPending(ctx context.Context, actor *models.User, limit, offset int) ([]models.PermissionRequest, error) {
	if !actor.IsStaff() {
		return nil, models.NewForbiddenError("Only staff can review requests")
	}
	reqs, err := s.permissions.ListByStatus(ctx, models.PermissionStatusPending, limit, offset)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []models.PermissionRequest{}
	}
	return reqs, nil
}

// Review approves or rejects a pending request. Staff only; users cannot
// review their own requests, and only pending requests may transition.
func (s *PermissionService) Review(ctx context.Context, actor *models.User, id uint, approve bool, notes string) (*models.PermissionRequest, error) {
	if !actor.IsStaff() {
		return nil, models.NewForbiddenError("Only staff can review requests")
	}

	req, err := s.permissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.UserID == actor.ID {
		return nil, models.NewForbiddenError("You cannot review your own request")
	}
	if req.Status != models.PermissionStatusPending {
		return nil, models.NewValidationError("Request has already been reviewed")
	}

	if approve {
		req.Status = models.PermissionStatusApproved
	} else {
		req.Status = models.PermissionStatusRejected
	}
	reviewer := actor.ID
	req.ReviewedBy = &reviewer
	req.ReviewNotes = notes

	if err := s.permissions.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Cancel withdraws one of the user's own pending requests.
func (s *PermissionService) Cancel(ctx context.Context, userID, id uint) error {
	req, err := s.permissions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.UserID != userID {
		return models.NewNotFoundError("Permission request", id)
	}
	if req.Status != models.PermissionStatusPending {
		return models.NewValidationError("Only pending requests can be cancelled")
	}
	return s.permissions.Delete(ctx, id)
}
