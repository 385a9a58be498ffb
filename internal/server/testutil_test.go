package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"shiftdesk/internal/config"
	"shiftdesk/internal/database"
	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
	"shiftdesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// newTestServer wires a Server against an in-memory database. The Prometheus
// middleware is left nil so repeated test runs don't re-register collectors.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	db := newTestDB(t)

	s := &Server{
		config: &config.Config{
			JWTSecret:          "test-secret-test-secret-test-secret",
			Env:                "test",
			PresenceTTLSeconds: 90,
		},
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		chatRepo:       repository.NewChatRepository(db),
		attendanceRepo: repository.NewAttendanceRepository(db),
		taskRepo:       repository.NewTaskRepository(db),
		noteRepo:       repository.NewNoteRepository(db),
		incidentRepo:   repository.NewIncidentRepository(db),
		permissionRepo: repository.NewPermissionRepository(db),
	}
	s.userService = service.NewUserService(s.userRepo)
	s.feedService = service.NewFeedService(s.postRepo, s.commentRepo)
	s.chatService = service.NewChatService(s.chatRepo, s.userRepo)
	s.attendanceService = service.NewAttendanceService(s.attendanceRepo)
	s.taskService = service.NewTaskService(s.taskRepo, s.userRepo)
	s.noteService = service.NewNoteService(s.noteRepo)
	s.incidentService = service.NewIncidentService(s.incidentRepo)
	s.permissionService = service.NewPermissionService(s.permissionRepo)
	return s
}

// asUser returns middleware that injects the user into locals the way
// AuthRequired would.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

// mustCreateUser inserts a user row directly.
func mustCreateUser(t *testing.T, db *gorm.DB, username, role, group string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@shiftdesk.local",
		Password: string(hash),
		Role:     role,
		Group:    group,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// envelope mirrors the standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doJSON performs a request against the app and decodes the envelope.
func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp.StatusCode, env
}

// decodeData unmarshals the envelope payload into dest.
func decodeData(t *testing.T, env envelope, dest any) {
	t.Helper()
	require.NotEmpty(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}
