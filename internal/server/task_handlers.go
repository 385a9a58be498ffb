package server

import (
	"shiftdesk/internal/models"
	"shiftdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTasks handles GET /api/tasks
func (s *Server) GetTasks(c *fiber.Ctx) error {
	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	tasks, err := s.taskService.List(c.Context(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, tasks)
}

// CreateTask handles POST /api/tasks
func (s *Server) CreateTask(c *fiber.Ctx) error {
	var req service.CreateTaskInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	task, err := s.taskService.Create(c.Context(), actor, req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:id
func (s *Server) UpdateTask(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateTaskInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	task, err := s.taskService.Update(c.Context(), actor, id, req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, task)
}

// MoveTask handles POST /api/tasks/:id/move, the kanban drag-and-drop endpoint.
func (s *Server) MoveTask(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status   string `json:"status"`
		Position int    `json:"position"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	task, err := s.taskService.Move(c.Context(), actor, id, req.Status, req.Position)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (s *Server) DeleteTask(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.taskService.Delete(c.Context(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Task deleted")
}
