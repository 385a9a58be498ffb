package server

import (
	"net/http"
	"testing"

	"shiftdesk/internal/cache"
	"shiftdesk/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func activityApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID))
	app.Post("/activity/heartbeat", s.Heartbeat)
	app.Post("/activity/afk", s.MarkAFK)
	app.Get("/activity/status", s.GetActivityStatus)
	return app
}

func TestPresenceWritesAreBestEffort(t *testing.T) {
	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "alice", models.RoleEmployee, "alpha")

	// Point the cache at a redis that is already gone.
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	cache.SetClient(redis.NewClient(&redis.Options{Addr: addr}))
	t.Cleanup(func() { cache.SetClient(nil) })

	app := activityApp(s, alice.ID)
	status, env := doJSON(t, app, http.MethodPost, "/activity/heartbeat", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	status, env = doJSON(t, app, http.MethodPost, "/activity/afk", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
}
