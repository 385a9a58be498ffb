package repository

import (
	"context"
	"errors"

	"shiftdesk/internal/models"

	"gorm.io/gorm"
)

// IncidentRepository defines persistence operations for incident reports.
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uint) (*models.Incident, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.Incident, error)
	ListByReporter(ctx context.Context, reporterID uint, limit, offset int) ([]models.Incident, error)
	Update(ctx context.Context, incident *models.Incident) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type incidentRepository struct {
	db *gorm.DB
}

// NewIncidentRepository returns a new IncidentRepository implementation.
func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &incidentRepository{db: db}
}

func (r *incidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	if err := r.db.WithContext(ctx).Create(incident).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id uint) (*models.Incident, error) {
	var incident models.Incident
	if err := r.db.WithContext(ctx).First(&incident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Incident", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &incident, nil
}

// List returns incidents newest first, optionally filtered by status.
func (r *incidentRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Incident, error) {
	q := r.db.WithContext(ctx).Model(&models.Incident{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var incidents []models.Incident
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&incidents).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return incidents, nil
}

func (r *incidentRepository) ListByReporter(ctx context.Context, reporterID uint, limit, offset int) ([]models.Incident, error) {
	var incidents []models.Incident
	err := r.db.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&incidents).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return incidents, nil
}

func (r *incidentRepository) Update(ctx context.Context, incident *models.Incident) error {
	if err := r.db.WithContext(ctx).Save(incident).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *incidentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Incident{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *incidentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Incident{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
