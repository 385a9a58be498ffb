package repository

import (
	"context"
	"errors"

	"shiftdesk/internal/models"

	"gorm.io/gorm"
)

// PermissionRepository defines persistence operations for time-off requests.
type PermissionRepository interface {
	Create(ctx context.Context, req *models.PermissionRequest) error
	GetByID(ctx context.Context, id uint) (*models.PermissionRequest, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.PermissionRequest, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.PermissionRequest, error)
	Update(ctx context.Context, req *models.PermissionRequest) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository returns a new PermissionRepository implementation.
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) Create(ctx context.Context, req *models.PermissionRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *permissionRepository) GetByID(ctx context.Context, id uint) (*models.PermissionRequest, error) {
	var req models.PermissionRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Permission request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *permissionRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.PermissionRequest, error) {
	var reqs []models.PermissionRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *permissionRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.PermissionRequest, error) {
	q := r.db.WithContext(ctx).Model(&models.PermissionRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var reqs []models.PermissionRequest
	err := q.Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *permissionRepository) Update(ctx context.Context, req *models.PermissionRequest) error {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *permissionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.PermissionRequest{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *permissionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PermissionRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
