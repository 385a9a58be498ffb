package repository

import (
	"context"
	"errors"

	"shiftdesk/internal/models"

	"gorm.io/gorm"
)

// TaskRepository defines persistence operations for kanban tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	ListByGroup(ctx context.Context, group string) ([]models.Task, error)
	ListAll(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
	MaxPosition(ctx context.Context, group, status string) (int, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a new TaskRepository implementation.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Task", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &task, nil
}

func (r *taskRepository) ListByGroup(ctx context.Context, group string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("work_group = ?", group).
		Order("status ASC, position ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *taskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Order("work_group ASC, status ASC, position ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Task{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// MaxPosition returns the highest position within a column, 0 when empty.
func (r *taskRepository) MaxPosition(ctx context.Context, group, status string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Select("MAX(position)").
		Where("work_group = ? AND status = ?", group, status).
		Scan(&max).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
