package server

import (
	"shiftdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetConversations handles GET /api/chat/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.chatService.Conversations(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, conversations)
}

// GetMessages handles GET /api/chat/messages/:userId?since_id=N&limit=N.
// Clients poll with the last message ID they hold; only strictly newer
// messages come back. Fetching marks the thread as read.
func (s *Server) GetMessages(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	sinceID := c.QueryInt("since_id", 0)
	if sinceID < 0 {
		sinceID = 0
	}
	limit := c.QueryInt("limit", 0)

	messages, err := s.chatService.GetThread(
		c.Context(), currentUserID(c), otherID, uint(sinceID), limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, messages)
}

// SendMessage handles POST /api/chat/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ToUserID    uint   `json:"to_user_id"`
		Content     string `json:"content"`
		ContentType string `json:"content_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ToUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Recipient is required"))
	}

	msg, err := s.chatService.SendMessage(
		c.Context(), currentUserID(c), req.ToUserID, req.Content, req.ContentType)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, msg)
}

// MarkThreadRead handles POST /api/chat/read/:userId
func (s *Server) MarkThreadRead(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.chatService.MarkRead(c.Context(), currentUserID(c), otherID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Thread marked as read")
}

// DeleteConversation handles DELETE /api/chat/conversation/:userId
func (s *Server) DeleteConversation(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.chatService.DeleteConversation(c.Context(), currentUserID(c), otherID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Conversation deleted")
}
