package server

import (
	"time"

	"shiftdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAdminOverview handles GET /api/admin/overview. It returns the headline
// numbers for the admin dashboard.
func (s *Server) GetAdminOverview(c *fiber.Ctx) error {
	ctx := c.Context()

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	clockedIn, err := s.attendanceRepo.CountClockedIn(ctx)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	openIncidents, err := s.incidentRepo.CountByStatus(ctx, models.IncidentStatusOpen)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	pendingPermissions, err := s.permissionRepo.CountByStatus(ctx, models.PermissionStatusPending)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	postsToday, err := s.postRepo.CountSince(ctx, startOfDay)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"total_users":         totalUsers,
		"clocked_in":          clockedIn,
		"open_incidents":      openIncidents,
		"pending_permissions": pendingPermissions,
		"posts_today":         postsToday,
	})
}
