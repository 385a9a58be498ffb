package server

import (
	"shiftdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	viewer, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	p := parsePagination(c, 20)
	posts, err := s.feedService.ListFeed(c.Context(), viewer, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts)
}

// CreatePost handles POST /api/feed
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	author, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	post, err := s.feedService.CreatePost(c.Context(), author, req.Content)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, post)
}

// DeletePost handles DELETE /api/feed/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.feedService.DeletePost(c.Context(), actor, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Post deleted")
}

// ReactToPost handles POST /api/feed/:id/react. Sending the emoji the user
// already has removes the reaction; a different emoji replaces it.
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	result, err := s.feedService.React(c.Context(), user, postID, req.Emoji)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, result)
}

// CreateComment handles POST /api/feed/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	author, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comment, err := s.feedService.CreateComment(c.Context(), author, postID, req.Content)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, comment)
}

// DeleteComment handles DELETE /api/feed/comments/:commentId and the
// post-scoped DELETE /api/feed/:id/comment/:commentId.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var postID uint
	if c.Params("id") != "" {
		if postID, err = s.parseID(c, "id"); err != nil {
			return nil
		}
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.feedService.DeleteComment(c.Context(), actor, postID, commentID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Comment deleted")
}
