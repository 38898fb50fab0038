package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitturk/backend/internal/model"
)

type NoteStore struct {
	coll *mongo.Collection
}

func NewNoteStore(db *mongo.Database) *NoteStore {
	return &NoteStore{coll: db.Collection(model.NotesCollection)}
}

func (s *NoteStore) ListNotes(ctx context.Context, userID string) ([]model.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	return findAll[model.Note](ctx, cur, err)
}

func (s *NoteStore) CreateNote(ctx context.Context, note *model.Note) error {
	res, err := s.coll.InsertOne(ctx, note)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	note.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *NoteStore) UpdateNote(ctx context.Context, userID string, id primitive.ObjectID, update model.NoteUpdate) error {
	set := bson.M{"updatedAt": update.UpdatedAt}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if update.Completed != nil {
		set["completed"] = *update.Completed
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *NoteStore) DeleteNote(ctx context.Context, userID string, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
