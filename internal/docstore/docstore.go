// Package docstore implements the document-backed stores on MongoDB.
package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/service"
)

var (
	_ service.NoteStore     = (*NoteStore)(nil)
	_ service.GoalStore     = (*GoalStore)(nil)
	_ service.MealPlanStore = (*MealPlanStore)(nil)
	_ service.RecipeStore   = (*RecipeStore)(nil)
)

// findAll decodes every document of cur into out.
func findAll[T any](ctx context.Context, cur *mongo.Cursor, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.ErrNotFound
	}
	return err
}
