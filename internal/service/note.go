package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/types"
)

type NoteService struct {
	store NoteStore
	now   func() time.Time
}

var _ INoteService = (*NoteService)(nil)

func NewNoteService(store NoteStore) *NoteService {
	return &NoteService{store: store, now: time.Now}
}

func (s *NoteService) ListNotes(ctx context.Context, userID uuid.UUID) ([]model.Note, error) {
	notes, err := s.store.ListNotes(ctx, userID.String())
	if err != nil {
		return nil, Internal("failed to list notes", err)
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

func (s *NoteService) CreateNote(ctx context.Context, userID uuid.UUID, req *types.CreateNoteRequest) (*model.Note, error) {
	now := s.now().UTC()
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	note := &model.Note{
		UserID:    userID.String(),
		Title:     req.Title,
		Content:   req.Content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, Internal("failed to create note", err)
	}
	return note, nil
}

// UpdateNote changes only the caller's note. An id that matches nothing
// the caller owns is a no-op.
func (s *NoteService) UpdateNote(ctx context.Context, userID uuid.UUID, req *types.UpdateNoteRequest) error {
	id, err := parseDocumentID(req.ID)
	if err != nil {
		return err
	}
	update := model.NoteUpdate{
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		Completed: req.Completed,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.UpdateNote(ctx, userID.String(), id, update); err != nil && !errors.Is(err, model.ErrNotFound) {
		return Internal("failed to update note", err)
	}
	return nil
}

func (s *NoteService) DeleteNote(ctx context.Context, userID uuid.UUID, rawID string) error {
	id, err := parseDocumentID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteNote(ctx, userID.String(), id); err != nil && !errors.Is(err, model.ErrNotFound) {
		return Internal("failed to delete note", err)
	}
	return nil
}

func parseDocumentID(raw string) (primitive.ObjectID, error) {
	if raw == "" {
		return primitive.NilObjectID, Validation("missing id", map[string]string{"id": "required"})
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, Validation("invalid id", map[string]string{"id": "objectid"})
	}
	return id, nil
}
