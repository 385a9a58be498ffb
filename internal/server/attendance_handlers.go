package server

import (
	"shiftdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ClockIn handles POST /api/attendance/clock-in
func (s *Server) ClockIn(c *fiber.Ctx) error {
	record, err := s.attendanceService.ClockIn(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, record)
}

// ClockOut handles POST /api/attendance/clock-out
func (s *Server) ClockOut(c *fiber.Ctx) error {
	record, err := s.attendanceService.ClockOut(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, record)
}

// StartBreak handles POST /api/attendance/breaks/start
func (s *Server) StartBreak(c *fiber.Ctx) error {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	br, err := s.attendanceService.StartBreak(c.Context(), currentUserID(c), req.Kind)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, br)
}

// EndBreak handles POST /api/attendance/breaks/end
func (s *Server) EndBreak(c *fiber.Ctx) error {
	br, err := s.attendanceService.EndBreak(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, br)
}

// GetCurrentAttendance handles GET /api/attendance/current. Data is null when
// the user is not clocked in.
func (s *Server) GetCurrentAttendance(c *fiber.Ctx) error {
	record, err := s.attendanceService.Current(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, record)
}

// GetAttendanceHistory handles GET /api/attendance/history
func (s *Server) GetAttendanceHistory(c *fiber.Ctx) error {
	p := parsePagination(c, 30)
	records, err := s.attendanceService.History(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, records)
}
