package repository

import (
	"context"
	"errors"
	"time"

	"shiftdesk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for feed posts and reactions.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListVisible(ctx context.Context, viewer *models.User, limit, offset int) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	CountSince(ctx context.Context, since time.Time) (int64, error)

	GetReaction(ctx context.Context, postID, userID uint) (*models.Reaction, error)
	SetReaction(ctx context.Context, reaction *models.Reaction) error
	ClearReaction(ctx context.Context, postID, userID uint) error
	ReactionCounts(ctx context.Context, postIDs []uint) (map[uint]map[string]int, error)
	ReactionsByUser(ctx context.Context, postIDs []uint, userID uint) (map[uint]string, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListVisible returns posts the viewer is allowed to see, newest first.
// Employees see their own posts plus posts from their work group. Supervisors
// additionally see group-less posts and anything authored by staff. Admins see
// everything.
func (r *postRepository) ListVisible(ctx context.Context, viewer *models.User, limit, offset int) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})

	switch viewer.Role {
	case models.RoleAdmin:
		// no filter
	case models.RoleSupervisor:
		q = q.Where(
			"user_id = ? OR work_group = '' OR work_group = ? OR role IN ?",
			viewer.ID, viewer.Group, []string{models.RoleAdmin, models.RoleSupervisor},
		)
	default:
		if viewer.Group == "" {
			q = q.Where("user_id = ?", viewer.ID)
		} else {
			q = q.Where("user_id = ? OR work_group = ?", viewer.ID, viewer.Group)
		}
	}

	var posts []models.Post
	if err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Delete removes the post along with its comments and reactions in one
// transaction so no orphans survive.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) GetReaction(ctx context.Context, postID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &reaction, nil
}

// SetReaction upserts the user's single reaction row for the post. The unique
// (post_id, user_id) index makes the conflict target well defined.
func (r *postRepository) SetReaction(ctx context.Context, reaction *models.Reaction) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"emoji"}),
	}).Create(reaction).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ClearReaction(ctx context.Context, postID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Reaction{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ReactionCounts aggregates per-emoji counts for the given posts.
func (r *postRepository) ReactionCounts(ctx context.Context, postIDs []uint) (map[uint]map[string]int, error) {
	result := make(map[uint]map[string]int, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	type row struct {
		PostID uint
		Emoji  string
		N      int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Select("post_id, emoji, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id, emoji").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, rw := range rows {
		counts, ok := result[rw.PostID]
		if !ok {
			counts = models.ZeroReactionCounts()
			result[rw.PostID] = counts
		}
		counts[rw.Emoji] = rw.N
	}
	return result, nil
}

// ReactionsByUser returns the viewer's emoji per post, for posts they reacted to.
func (r *postRepository) ReactionsByUser(ctx context.Context, postIDs []uint, userID uint) (map[uint]string, error) {
	result := make(map[uint]string)
	if len(postIDs) == 0 {
		return result, nil
	}

	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id IN ? AND user_id = ?", postIDs, userID).
		Find(&reactions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, re := range reactions {
		result[re.PostID] = re.Emoji
	}
	return result, nil
}
