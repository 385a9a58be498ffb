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

func chatApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID))
	app.Get("/chat/conversations", s.GetConversations)
	app.Get("/chat/messages/:userId", s.GetMessages)
	app.Post("/chat/messages", s.SendMessage)
	app.Post("/chat/read/:userId", s.MarkThreadRead)
	app.Delete("/chat/conversation/:userId", s.DeleteConversation)
	return app
}

func sendMessage(t *testing.T, s *Server, from, to uint, content string) models.Message {
	t.Helper()
	status, env := doJSON(t, chatApp(s, from), http.MethodPost, "/chat/messages",
		map[string]any{"to_user_id": to, "content": content})
	require.Equal(t, http.StatusCreated, status)
	var msg models.Message
	decodeData(t, env, &msg)
	return msg
}

func TestSendMessageEndpoint(t *testing.T) {
	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "alice", models.RoleEmployee, "alpha")
	bob := mustCreateUser(t, s.db, "bob", models.RoleEmployee, "alpha")

	msg := sendMessage(t, s, alice.ID, bob.ID, "hey bob")
	assert.Equal(t, alice.ID, msg.FromUserID)
	assert.Equal(t, bob.ID, msg.ToUserID)
	assert.Equal(t, models.MessageTypeText, msg.ContentType)
	assert.Nil(t, msg.ReadAt)

	// Missing recipient and unknown recipient are both rejected.
	status, _ := doJSON(t, chatApp(s, alice.ID), http.MethodPost, "/chat/messages",
		map[string]any{"content": "to nobody"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, chatApp(s, alice.ID), http.MethodPost, "/chat/messages",
		map[string]any{"to_user_id": 999, "content": "to nobody"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetMessagesSinceID(t *testing.T) {
	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "alice", models.RoleEmployee, "alpha")
	bob := mustCreateUser(t, s.db, "bob", models.RoleEmployee, "alpha")

	var ids []uint
	for i := 1; i <= 5; i++ {
		msg := sendMessage(t, s, alice.ID, bob.ID, fmt.Sprintf("message %d", i))
		ids = append(ids, msg.ID)
	}

	fetch := func(userID uint, target string) []models.Message {
		status, env := doJSON(t, chatApp(s, userID), http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, status)
		var messages []models.Message
		decodeData(t, env, &messages)
		return messages
	}

	// A plain fetch returns the whole thread oldest first.
	all := fetch(bob.ID, fmt.Sprintf("/chat/messages/%d", alice.ID))
	require.Len(t, all, 5)
	assert.Equal(t, ids[0], all[0].ID)
	assert.Equal(t, ids[4], all[4].ID)

	// Polling with since_id only returns strictly newer messages.
	newer := fetch(bob.ID, fmt.Sprintf("/chat/messages/%d?since_id=%d", alice.ID, ids[2]))
	require.Len(t, newer, 2)
	for _, m := range newer {
		assert.Greater(t, m.ID, ids[2])
	}

	// Fetching marked the thread read for bob.
	var unread int64
	require.NoError(t, s.db.Model(&models.Message{}).
		Where("to_user_id = ? AND read_at IS NULL", bob.ID).
		Count(&unread).Error)
	assert.Zero(t, unread)
}

func TestConversationsEndpoint(t *testing.T) {
	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "alice", models.RoleEmployee, "alpha")
	bob := mustCreateUser(t, s.db, "bob", models.RoleEmployee, "alpha")
	carol := mustCreateUser(t, s.db, "carol", models.RoleEmployee, "bravo")

	sendMessage(t, s, bob.ID, alice.ID, "from bob")
	sendMessage(t, s, bob.ID, alice.ID, "still bob")
	sendMessage(t, s, carol.ID, alice.ID, "from carol")

	status, env := doJSON(t, chatApp(s, alice.ID), http.MethodGet, "/chat/conversations", nil)
	require.Equal(t, http.StatusOK, status)
	var conversations []models.Conversation
	decodeData(t, env, &conversations)
	require.Len(t, conversations, 2)

	// Newest thread first, with per-peer unread counts.
	assert.Equal(t, carol.ID, conversations[0].UserID)
	assert.Equal(t, "carol", conversations[0].Username)
	assert.Equal(t, 1, conversations[0].UnreadCount)
	assert.Equal(t, bob.ID, conversations[1].UserID)
	assert.Equal(t, 2, conversations[1].UnreadCount)
	require.NotNil(t, conversations[1].LastMessage)
	assert.Equal(t, "still bob", conversations[1].LastMessage.Content)
}

func TestDeleteConversationEndpoint(t *testing.T) {
	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "alice", models.RoleEmployee, "alpha")
	bob := mustCreateUser(t, s.db, "bob", models.RoleEmployee, "alpha")

	sendMessage(t, s, alice.ID, bob.ID, "one")
	sendMessage(t, s, bob.ID, alice.ID, "two")

	status, _ := doJSON(t, chatApp(s, alice.ID), http.MethodDelete,
		fmt.Sprintf("/chat/conversation/%d", bob.ID), nil)
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON(t, chatApp(s, alice.ID), http.MethodGet, "/chat/conversations", nil)
	require.Equal(t, http.StatusOK, status)
	var conversations []models.Conversation
	decodeData(t, env, &conversations)
	assert.Empty(t, conversations)
}
