package service

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
)

const (
	maxMessageLength   = 2000
	defaultThreadLimit = 50
)

// ChatService implements direct messaging between users.
type ChatService struct {
	chat  repository.ChatRepository
	users repository.UserRepository
}

// NewChatService returns a new ChatService.
func NewChatService(chat repository.ChatRepository, users repository.UserRepository) *ChatService {
	return &ChatService{chat: chat, users: users}
}

// SendMessage delivers a message from one user to another.
func (s *ChatService) SendMessage(ctx context.Context, fromID, toID uint, content, contentType string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, models.NewValidationError("Message content is too long")
	}
	if fromID == toID {
		return nil, models.NewValidationError("Cannot send a message to yourself")
	}
	if contentType == "" {
		contentType = models.MessageTypeText
	}
	if contentType != models.MessageTypeText && contentType != models.MessageTypeImage {
		return nil, models.NewValidationError("Unknown message content type")
	}

	// Recipient must exist.
	if _, err := s.users.GetByID(ctx, toID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		FromUserID:  fromID,
		ToUserID:    toID,
		Content:     content,
		ContentType: contentType,
	}
	if err := s.chat.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetThread returns the message thread with another user in ascending ID
// order. When sinceID is set only strictly newer messages are returned, which
// lets clients poll incrementally without re-downloading history. Fetching a
// thread marks the incoming messages as read.
func (s *ChatService) GetThread(ctx context.Context, userID, otherID uint, sinceID uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultThreadLimit
	}
	if _, err := s.users.GetByID(ctx, otherID); err != nil {
		return nil, err
	}

	messages, err := s.chat.GetThread(ctx, userID, otherID, sinceID, limit)
	if err != nil {
		return nil, err
	}
	if err := s.chat.MarkThreadRead(ctx, userID, otherID); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// MarkRead stamps all unread messages from otherID to userID as read.
func (s *ChatService) MarkRead(ctx context.Context, userID, otherID uint) error {
	return s.chat.MarkThreadRead(ctx, userID, otherID)
}

// Conversations derives the user's conversation list from their message
// history. Conversations are not stored; each entry carries the peer, the
// latest message and the unread count, ordered by latest activity.
func (s *ChatService) Conversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	peers, err := s.chat.PeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]models.Conversation, 0, len(peers))
	for _, peerID := range peers {
		peer, err := s.users.GetByID(ctx, peerID)
		if err != nil {
			// Peer account may have been removed; skip the thread.
			if models.IsNotFound(err) {
				continue
			}
			return nil, err
		}

		last, err := s.chat.LastMessage(ctx, userID, peerID)
		if err != nil {
			return nil, err
		}
		unread, err := s.chat.UnreadCount(ctx, userID, peerID)
		if err != nil {
			return nil, err
		}

		conversations = append(conversations, models.Conversation{
			UserID:      peer.ID,
			Username:    peer.Username,
			Avatar:      peer.Avatar,
			LastMessage: last,
			UnreadCount: int(unread),
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		li, lj := conversations[i].LastMessage, conversations[j].LastMessage
		if li == nil || lj == nil {
			return lj == nil && li != nil
		}
		return li.ID > lj.ID
	})
	return conversations, nil
}

// DeleteConversation removes the user's entire thread with another user.
func (s *ChatService) DeleteConversation(ctx context.Context, userID, otherID uint) error {
	return s.chat.DeleteThread(ctx, userID, otherID)
}
