package server

import (
	"shiftdesk/internal/models"
	"shiftdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetIncidents handles GET /api/incidents?status=open
func (s *Server) GetIncidents(c *fiber.Ctx) error {
	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	p := parsePagination(c, 50)
	incidents, err := s.incidentService.List(c.Context(), actor, c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, incidents)
}

// CreateIncident handles POST /api/incidents
func (s *Server) CreateIncident(c *fiber.Ctx) error {
	var req service.CreateIncidentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	incident, err := s.incidentService.Create(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, incident)
}

// UpdateIncidentStatus handles PUT /api/incidents/:id/status (staff only)
func (s *Server) UpdateIncidentStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	incident, err := s.incidentService.UpdateStatus(c.Context(), actor, id, req.Status)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, incident)
}

// DeleteIncident handles DELETE /api/incidents/:id (admin only)
func (s *Server) DeleteIncident(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.incidentService.Delete(c.Context(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Incident deleted")
}
