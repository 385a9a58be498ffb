// Package service contains the business logic for the application.
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
)

const (
	maxPostLength    = 2000
	maxCommentLength = 1000
)

// FeedService implements the internal social feed: posts, comments and
// reactions.
type FeedService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(posts repository.PostRepository, comments repository.CommentRepository) *FeedService {
	return &FeedService{posts: posts, comments: comments}
}

// CreatePost publishes a post authored by the given user. The author's
// identity is denormalized onto the post.
func (s *FeedService) CreatePost(ctx context.Context, author *models.User, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Post content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxPostLength {
		return nil, models.NewValidationError("Post content is too long")
	}

	post := &models.Post{
		UserID:   author.ID,
		Username: author.Username,
		Role:     author.Role,
		Group:    author.Group,
		Client:   author.Client,
		Content:  content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	post.Comments = []models.Comment{}
	post.ReactionCounts = models.ZeroReactionCounts()
	return post, nil
}

// ListFeed returns the posts visible to the viewer, newest first, enriched
// with comments, per-emoji reaction counts and the viewer's own reaction.
func (s *FeedService) ListFeed(ctx context.Context, viewer *models.User, limit, offset int) ([]models.Post, error) {
	posts, err := s.posts.ListVisible(ctx, viewer, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []models.Post{}, nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	commentsByPost, err := s.comments.ListByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.posts.ReactionCounts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	mine, err := s.posts.ReactionsByUser(ctx, postIDs, viewer.ID)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		p := &posts[i]
		p.Comments = commentsByPost[p.ID]
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
		if c, ok := counts[p.ID]; ok {
			p.ReactionCounts = c
		} else {
			p.ReactionCounts = models.ZeroReactionCounts()
		}
		if emoji, ok := mine[p.ID]; ok {
			e := emoji
			p.MyReaction = &e
		}
	}
	return posts, nil
}

// DeletePost removes a post together with its comments and reactions. Only
// the author or an admin may delete a post.
func (s *FeedService) DeletePost(ctx context.Context, actor *models.User, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return models.NewForbiddenError("You cannot delete this post")
	}
	return s.posts.Delete(ctx, postID)
}

// React toggles the user's reaction on a post. Reacting with the emoji the
// user already has removes it; reacting with a different emoji replaces the
// previous one. A user holds at most one reaction per post.
func (s *FeedService) React(ctx context.Context, user *models.User, postID uint, emoji string) (*models.ReactionResult, error) {
	if !models.ValidEmoji(emoji) {
		return nil, models.NewValidationError("Unknown reaction emoji")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	existing, err := s.posts.GetReaction(ctx, postID, user.ID)
	if err != nil {
		return nil, err
	}

	var mine *string
	switch {
	case existing != nil && existing.Emoji == emoji:
		// Same emoji toggles the reaction off.
		if err := s.posts.ClearReaction(ctx, postID, user.ID); err != nil {
			return nil, err
		}
	default:
		if err := s.posts.SetReaction(ctx, &models.Reaction{
			PostID: postID,
			UserID: user.ID,
			Emoji:  emoji,
		}); err != nil {
			return nil, err
		}
		e := emoji
		mine = &e
	}

	counts, err := s.posts.ReactionCounts(ctx, []uint{postID})
	if err != nil {
		return nil, err
	}
	result := &models.ReactionResult{
		ReactionCounts: models.ZeroReactionCounts(),
		MyReaction:     mine,
	}
	if c, ok := counts[postID]; ok {
		result.ReactionCounts = c
	}
	return result, nil
}

// CreateComment adds a comment to a post.
func (s *FeedService) CreateComment(ctx context.Context, author *models.User, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, models.NewValidationError("Comment content is too long")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   author.ID,
		Username: author.Username,
		Role:     author.Role,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the comment author or an admin may
// delete it. A non-zero postID additionally requires the comment to belong to
// that post; a mismatch reads as not found.
func (s *FeedService) DeleteComment(ctx context.Context, actor *models.User, postID, commentID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if postID != 0 && comment.PostID != postID {
		return models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID != actor.ID && !actor.IsAdmin() {
		return models.NewForbiddenError("You cannot delete this comment")
	}
	return s.comments.Delete(ctx, commentID)
}
