package repository

import (
	"context"
	"errors"

	"shiftdesk/internal/models"

	"gorm.io/gorm"
)

// AttendanceRepository defines persistence operations for attendance and breaks.
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
	GetOpen(ctx context.Context, userID uint) (*models.AttendanceRecord, error)
	History(ctx context.Context, userID uint, limit, offset int) ([]models.AttendanceRecord, error)
	CountClockedIn(ctx context.Context) (int64, error)

	CreateBreak(ctx context.Context, br *models.BreakRecord) error
	UpdateBreak(ctx context.Context, br *models.BreakRecord) error
	GetOpenBreak(ctx context.Context, attendanceID uint) (*models.BreakRecord, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository returns a new AttendanceRepository implementation.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *attendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetOpen returns the user's record without a clock-out, or nil when they are
// not clocked in.
func (r *attendanceRepository) GetOpen(ctx context.Context, userID uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Where("user_id = ? AND clock_out IS NULL", userID).
		Order("clock_in DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &record, nil
}

func (r *attendanceRepository) History(ctx context.Context, userID uint, limit, offset int) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Where("user_id = ?", userID).
		Order("clock_in DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return records, nil
}

func (r *attendanceRepository) CountClockedIn(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).
		Where("clock_out IS NULL").
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *attendanceRepository) CreateBreak(ctx context.Context, br *models.BreakRecord) error {
	if err := r.db.WithContext(ctx).Create(br).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *attendanceRepository) UpdateBreak(ctx context.Context, br *models.BreakRecord) error {
	if err := r.db.WithContext(ctx).Save(br).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetOpenBreak returns the still-running break on a record, or nil.
func (r *attendanceRepository) GetOpenBreak(ctx context.Context, attendanceID uint) (*models.BreakRecord, error) {
	var br models.BreakRecord
	err := r.db.WithContext(ctx).
		Where("attendance_id = ? AND ended_at IS NULL", attendanceID).
		Order("started_at DESC").
		First(&br).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &br, nil
}
