package repository

import (
	"context"
	"errors"
	"time"

	"shiftdesk/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines persistence operations for direct messages.
type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessage(ctx context.Context, id uint) (*models.Message, error)
	GetThread(ctx context.Context, userID, otherID uint, sinceID uint, limit int) ([]models.Message, error)
	MarkThreadRead(ctx context.Context, userID, otherID uint) error
	PeerIDs(ctx context.Context, userID uint) ([]uint, error)
	LastMessage(ctx context.Context, userID, otherID uint) (*models.Message, error)
	UnreadCount(ctx context.Context, userID, otherID uint) (int64, error)
	DeleteThread(ctx context.Context, userID, otherID uint) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns a new ChatRepository implementation.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

// GetThread returns messages between the two users in ascending ID order.
// With sinceID set, only messages with a strictly greater ID are returned.
// With sinceID zero, the most recent page is fetched descending and then
// reversed so the caller always sees ascending order.
func (r *chatRepository) GetThread(ctx context.Context, userID, otherID uint, sinceID uint, limit int) ([]models.Message, error) {
	q := r.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userID, otherID, otherID, userID)

	var messages []models.Message
	if sinceID > 0 {
		err := q.Where("id > ?", sinceID).
			Order("id ASC").
			Limit(limit).
			Find(&messages).Error
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		return messages, nil
	}

	err := q.Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// Reverse to chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MarkThreadRead stamps read_at on every unread message sent by otherID to
// userID. Already-read messages keep their original timestamp.
func (r *chatRepository) MarkThreadRead(ctx context.Context, userID, otherID uint) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("to_user_id = ? AND from_user_id = ? AND read_at IS NULL", userID, otherID).
		Update("read_at", now).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// PeerIDs returns the distinct set of users this user has exchanged messages with.
func (r *chatRepository) PeerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var sent, received []uint
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Distinct("to_user_id").
		Where("from_user_id = ?", userID).
		Pluck("to_user_id", &sent).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	err = r.db.WithContext(ctx).Model(&models.Message{}).
		Distinct("from_user_id").
		Where("to_user_id = ?", userID).
		Pluck("from_user_id", &received).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	seen := make(map[uint]struct{}, len(sent)+len(received))
	peers := make([]uint, 0, len(sent)+len(received))
	for _, id := range append(sent, received...) {
		if id == userID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		peers = append(peers, id)
	}
	return peers, nil
}

func (r *chatRepository) LastMessage(ctx context.Context, userID, otherID uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userID, otherID, otherID, userID).
		Order("id DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *chatRepository) UnreadCount(ctx context.Context, userID, otherID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("to_user_id = ? AND from_user_id = ? AND read_at IS NULL", userID, otherID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// DeleteThread soft-deletes every message between the two users.
func (r *chatRepository) DeleteThread(ctx context.Context, userID, otherID uint) error {
	err := r.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&models.Message{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
