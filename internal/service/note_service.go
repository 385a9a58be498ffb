package service

import (
	"context"
	"strings"

	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
)

// NoteService implements private per-user notes.
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService returns a new NoteService.
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// CreateNoteInput carries the fields accepted when creating a note.
type CreateNoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

// Create adds a note owned by the user.
func (s *NoteService) Create(ctx context.Context, userID uint, in CreateNoteInput) (*models.Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, models.NewValidationError("Note title is required")
	}

	note := &models.Note{
		UserID:  userID,
		Title:   in.Title,
		Content: in.Content,
		Pinned:  in.Pinned,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List returns the user's notes, pinned first.
func (s *NoteService) List(ctx context.Context, userID uint) ([]models.Note, error) {
	notes, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// UpdateNoteInput carries the updatable note fields.
type UpdateNoteInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Pinned  *bool   `json:"pinned"`
}

// Update edits one of the user's notes. Notes are strictly private, admins
// included.
func (s *NoteService) Update(ctx context.Context, userID, id uint, in UpdateNoteInput) (*models.Note, error) {
	note, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Note title is required")
		}
		note.Title = title
	}
	if in.Content != nil {
		note.Content = *in.Content
	}
	if in.Pinned != nil {
		note.Pinned = *in.Pinned
	}

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes one of the user's notes.
func (s *NoteService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}

func (s *NoteService) getOwned(ctx context.Context, userID, id uint) (*models.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		// Report not-found rather than forbidden so note IDs don't leak.
		return nil, models.NewNotFoundError("Note", id)
	}
	return note, nil
}
