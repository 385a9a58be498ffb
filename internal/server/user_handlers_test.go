package server

import (
	"fmt"
	"net/http"
	"testing"

	"shiftdesk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID))
	app.Get("/users/me", s.GetMyProfile)
	app.Put("/users/me", s.UpdateMyProfile)
	app.Get("/users", s.GetUsers)
	app.Get("/users/:id/profile", s.GetUser)
	app.Put("/users/:id/profile", s.UpdateUser)
	app.Put("/users/:id", s.UpdateUser)
	app.Get("/users/:id", s.GetUser)
	return app
}

func TestUserListAccess(t *testing.T) {
	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "alice", models.RoleEmployee, "alpha")
	sup := mustCreateUser(t, s.db, "sup", models.RoleSupervisor, "alpha")

	// Employees cannot enumerate the directory.
	status, _ := doJSON(t, usersApp(s, alice.ID), http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := doJSON(t, usersApp(s, sup.ID), http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, status)
	var listed []models.User
	decodeData(t, env, &listed)
	assert.Len(t, listed, 2)
}

func TestUserViewAccess(t *testing.T) {
	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "alice", models.RoleEmployee, "alpha")
	bob := mustCreateUser(t, s.db, "bob", models.RoleEmployee, "alpha")
	sup := mustCreateUser(t, s.db, "sup", models.RoleSupervisor, "alpha")

	get := func(asID, targetID uint) int {
		status, _ := doJSON(t, usersApp(s, asID), http.MethodGet,
			fmt.Sprintf("/users/%d", targetID), nil)
		return status
	}

	assert.Equal(t, http.StatusOK, get(alice.ID, alice.ID))
	assert.Equal(t, http.StatusForbidden, get(alice.ID, bob.ID))
	assert.Equal(t, http.StatusOK, get(sup.ID, alice.ID))

	// The profile alias enforces the same rule.
	status, env := doJSON(t, usersApp(s, alice.ID), http.MethodGet,
		fmt.Sprintf("/users/%d/profile", alice.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var me models.User
	decodeData(t, env, &me)
	assert.Equal(t, "alice", me.Username)

	status, _ = doJSON(t, usersApp(s, alice.ID), http.MethodGet,
		fmt.Sprintf("/users/%d/profile", bob.ID), nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestUpdateProfileAlias(t *testing.T) {
	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "alice", models.RoleEmployee, "alpha")
	bob := mustCreateUser(t, s.db, "bob", models.RoleEmployee, "alpha")

	status, env := doJSON(t, usersApp(s, alice.ID), http.MethodPut,
		fmt.Sprintf("/users/%d/profile", alice.ID),
		map[string]string{"avatar": "wave.png"})
	require.Equal(t, http.StatusOK, status)
	var updated models.User
	decodeData(t, env, &updated)
	assert.Equal(t, "wave.png", updated.Avatar)

	status, _ = doJSON(t, usersApp(s, alice.ID), http.MethodPut,
		fmt.Sprintf("/users/%d/profile", bob.ID),
		map[string]string{"avatar": "sneaky.png"})
	assert.Equal(t, http.StatusForbidden, status)
}
