package service

import (
	"context"
	"strings"

	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
)

// TaskService implements the per-group kanban board.
type TaskService struct {
	tasks repository.TaskRepository
	users repository.UserRepository
}

// NewTaskService returns a new TaskService.
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// CreateTaskInput carries the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Group       string `json:"group"`
	AssigneeID  *uint  `json:"assignee_id"`
}

// Create adds a task to the board. Non-admins may only create tasks in their
// own group; the task lands at the bottom of the todo column.
func (s *TaskService) Create(ctx context.Context, actor *models.User, in CreateTaskInput) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, models.NewValidationError("Task title is required")
	}
	if in.Group == "" {
		in.Group = actor.Group
	}
	if in.Group != actor.Group && !actor.IsAdmin() {
		return nil, models.NewForbiddenError("You cannot create tasks for another group")
	}
	if in.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *in.AssigneeID); err != nil {
			return nil, err
		}
	}

	max, err := s.tasks.MaxPosition(ctx, in.Group, models.TaskStatusTodo)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      models.TaskStatusTodo,
		Position:    max + 1,
		Group:       in.Group,
		AssigneeID:  in.AssigneeID,
		CreatedBy:   actor.ID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the board visible to the actor: their group's tasks, or every
// group for admins.
func (s *TaskService) List(ctx context.Context, actor *models.User) ([]models.Task, error) {
	var (
		tasks []models.Task
		err   error
	)
	if actor.IsAdmin() {
		tasks, err = s.tasks.ListAll(ctx)
	} else {
		tasks, err = s.tasks.ListByGroup(ctx, actor.Group)
	}
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// UpdateTaskInput carries the updatable task fields.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssigneeID  *uint   `json:"assignee_id"`
}

// Update edits a task's content fields. Board membership is required.
func (s *TaskService) Update(ctx context.Context, actor *models.User, id uint, in UpdateTaskInput) (*models.Task, error) {
	task, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Task title is required")
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *in.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = in.AssigneeID
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Move places a task in a column at a position. Used for kanban drag and drop.
func (s *TaskService) Move(ctx context.Context, actor *models.User, id uint, status string, position int) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, models.NewValidationError("Unknown task status")
	}
	if position < 0 {
		return nil, models.NewValidationError("Position cannot be negative")
	}

	task, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	task.Position = position
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task. The creator, staff, or an admin may delete it.
func (s *TaskService) Delete(ctx context.Context, actor *models.User, id uint) error {
	task, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return err
	}
	if task.CreatedBy != actor.ID && !actor.IsStaff() {
		return models.NewForbiddenError("You cannot delete this task")
	}
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) getVisible(ctx context.Context, actor *models.User, id uint) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Group != actor.Group && !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Task belongs to another group")
	}
	return task, nil
}
