package service

import (
	"context"
	"time"

	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
)

// AttendanceService implements clock-in/clock-out cycles and breaks.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	now        func() time.Time
}

// NewAttendanceService returns a new AttendanceService.
func NewAttendanceService(attendance repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ClockIn opens a new attendance record. A user with an open record cannot
// clock in again.
func (s *AttendanceService) ClockIn(ctx context.Context, userID uint) (*models.AttendanceRecord, error) {
	open, err := s.attendance.GetOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, models.NewValidationError("You are already clocked in")
	}

	record := &models.AttendanceRecord{
		UserID:  userID,
		ClockIn: s.now(),
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ClockOut closes the user's open record. Any break still running is ended at
// the same instant.
func (s *AttendanceService) ClockOut(ctx context.Context, userID uint) (*models.AttendanceRecord, error) {
	record, err := s.attendance.GetOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, models.NewValidationError("You are not clocked in")
	}

	now := s.now()
	if br, err := s.attendance.GetOpenBreak(ctx, record.ID); err != nil {
		return nil, err
	} else if br != nil {
		br.EndedAt = &now
		if err := s.attendance.UpdateBreak(ctx, br); err != nil {
			return nil, err
		}
	}

	record.ClockOut = &now
	if err := s.attendance.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// StartBreak begins a break on the user's open record. Only one break may run
// at a time.
func (s *AttendanceService) StartBreak(ctx context.Context, userID uint, kind string) (*models.BreakRecord, error) {
	if kind == "" {
		kind = models.BreakKindShort
	}
	if kind != models.BreakKindShort && kind != models.BreakKindLunch {
		return nil, models.NewValidationError("Unknown break kind")
	}

	record, err := s.attendance.GetOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, models.NewValidationError("You must clock in before taking a break")
	}

	if open, err := s.attendance.GetOpenBreak(ctx, record.ID); err != nil {
		return nil, err
	} else if open != nil {
		return nil, models.NewValidationError("You are already on a break")
	}

	br := &models.BreakRecord{
		AttendanceID: record.ID,
		Kind:         kind,
		StartedAt:    s.now(),
	}
	if err := s.attendance.CreateBreak(ctx, br); err != nil {
		return nil, err
	}
	return br, nil
}

// EndBreak closes the user's running break.
func (s *AttendanceService) EndBreak(ctx context.Context, userID uint) (*models.BreakRecord, error) {
	record, err := s.attendance.GetOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, models.NewValidationError("You are not clocked in")
	}

	br, err := s.attendance.GetOpenBreak(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if br == nil {
		return nil, models.NewValidationError("You are not on a break")
	}

	now := s.now()
	br.EndedAt = &now
	if err := s.attendance.UpdateBreak(ctx, br); err != nil {
		return nil, err
	}
	return br, nil
}

// Current returns the user's open attendance record, or nil when off shift.
func (s *AttendanceService) Current(ctx context.Context, userID uint) (*models.AttendanceRecord, error) {
	return s.attendance.GetOpen(ctx, userID)
}

// History returns the user's past attendance records, newest first.
func (s *AttendanceService) History(ctx context.Context, userID uint, limit, offset int) ([]models.AttendanceRecord, error) {
	records, err := s.attendance.History(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return records, nil
}
