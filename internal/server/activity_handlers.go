package server

import (
	"log/slog"
	"time"

	"shiftdesk/internal/cache"
	"shiftdesk/internal/middleware"
	"shiftdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) presenceTTL() time.Duration {
	return time.Duration(s.config.PresenceTTLSeconds) * time.Second
}

// Heartbeat handles POST /api/activity/heartbeat. Clients send one
// periodically; a user whose key expires shows up offline. Presence writes
// are best-effort, so cache failures are logged and not surfaced.
func (s *Server) Heartbeat(c *fiber.Ctx) error {
	if err := cache.Heartbeat(c.Context(), currentUserID(c), s.presenceTTL()); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "heartbeat write failed",
			slog.String("error", err.Error()))
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "ok")
}

// MarkAFK handles POST /api/activity/afk. Best-effort like Heartbeat.
func (s *Server) MarkAFK(c *fiber.Ctx) error {
	if err := cache.MarkAFK(c.Context(), currentUserID(c), s.presenceTTL()); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "afk write failed",
			slog.String("error", err.Error()))
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "ok")
}

// activityEntry pairs a user with their live presence state.
type activityEntry struct {
	UserID   uint           `json:"user_id"`
	Username string         `json:"username"`
	Group    string         `json:"group"`
	Presence cache.Presence `json:"presence"`
}

// GetActivityStatus handles GET /api/activity/status. It reports presence for
// every user so dashboards can render who is online, away, or offline.
func (s *Server) GetActivityStatus(c *fiber.Ctx) error {
	p := parsePagination(c, 100)
	users, err := s.userRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	presences := cache.GetPresences(c.Context(), ids)

	entries := make([]activityEntry, len(users))
	for i, u := range users {
		entries[i] = activityEntry{
			UserID:   u.ID,
			Username: u.Username,
			Group:    u.Group,
			Presence: presences[u.ID],
		}
	}
	return models.RespondWithData(c, fiber.StatusOK, entries)
}
