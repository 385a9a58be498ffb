package server

import (
	"shiftdesk/internal/models"
	"shiftdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyPermissions handles GET /api/permissions
func (s *Server) GetMyPermissions(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	reqs, err := s.permissionService.ListMine(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, reqs)
}

// CreatePermission handles POST /api/permissions
func (s *Server) CreatePermission(c *fiber.Ctx) error {
	var req service.CreatePermissionInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.permissionService.Create(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, created)
}

// GetPendingPermissions handles GET /api/permissions/pending (staff only)
func (s *Server) GetPendingPermissions(c *fiber.Ctx) error {
	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	p := parsePagination(c, 50)
	reqs, err := s.permissionService.ListPending(c.Context(), actor, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, reqs)
}

// ApprovePermission handles POST /api/permissions/:id/approve (staff only)
func (s *Server) ApprovePermission(c *fiber.Ctx) error {
	return s.reviewPermission(c, true)
}

// RejectPermission handles POST /api/permissions/:id/reject (staff only)
func (s *Server) RejectPermission(c *fiber.Ctx) error {
	return s.reviewPermission(c, false)
}

func (s *Server) reviewPermission(c *fiber.Ctx, approve bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	reviewed, err := s.permissionService.Review(c.Context(), actor, id, approve, req.Notes)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, reviewed)
}

// CancelPermission handles DELETE /api/permissions/:id
func (s *Server) CancelPermission(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.permissionService.Cancel(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Request cancelled")
}
