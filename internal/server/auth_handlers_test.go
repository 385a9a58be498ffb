package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shiftdesk/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Post("/auth/signup", s.Signup)
	app.Post("/auth/login", s.Login)

	protected := app.Group("/api", s.AuthRequired())
	protected.Post("/auth/logout", s.Logout)
	protected.Get("/users/me", s.GetMyProfile)
	return app
}

func doAuthed(t *testing.T, app *fiber.App, method, target, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)
	app := authApp(s)

	status, env := doJSON(t, app, http.MethodPost, "/auth/signup", map[string]string{
		"username": "dana",
		"email":    "Dana@Example.com",
		"password": "password123",
		"role":     models.RoleAdmin, // ignored, signup never elevates
	})
	require.Equal(t, http.StatusCreated, status)

	var signupResp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeData(t, env, &signupResp)
	require.NotEmpty(t, signupResp.Token)
	assert.Equal(t, models.RoleEmployee, signupResp.User.Role)
	assert.Equal(t, "dana@example.com", signupResp.User.Email)
	assert.Empty(t, signupResp.User.Password)

	// The issued token passes the auth middleware.
	status, env = doAuthed(t, app, http.MethodGet, "/api/users/me", signupResp.Token)
	require.Equal(t, http.StatusOK, status)
	var me models.User
	decodeData(t, env, &me)
	assert.Equal(t, "dana", me.Username)

	status, _ = doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"email":    "dana@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"email":    "dana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	s := newTestServer(t)
	app := authApp(s)

	status, _ := doJSON(t, app, http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doAuthed(t, app, http.MethodGet, "/api/users/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, status)

	// A token signed with a different secret is rejected.
	other := newTestServer(t)
	other.config.JWTSecret = "a-completely-different-secret-value"
	user := mustCreateUser(t, other.db, "eve", models.RoleEmployee, "")
	forged, err := other.generateToken(user)
	require.NoError(t, err)

	status, _ = doAuthed(t, app, http.MethodGet, "/api/users/me", forged)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)

	mr := miniredis.RunT(t)
	s.redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.redis.Close() })

	app := authApp(s)
	user := mustCreateUser(t, s.db, "frank", models.RoleEmployee, "alpha")
	token, err := s.generateToken(user)
	require.NoError(t, err)

	status, _ := doAuthed(t, app, http.MethodGet, "/api/users/me", token)
	require.Equal(t, http.StatusOK, status)

	status, _ = doAuthed(t, app, http.MethodPost, "/api/auth/logout", token)
	require.Equal(t, http.StatusOK, status)

	// The blacklisted token no longer works anywhere.
	status, env := doAuthed(t, app, http.MethodGet, "/api/users/me", token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}
