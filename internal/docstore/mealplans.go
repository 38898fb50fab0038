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

type MealPlanStore struct {
	coll *mongo.Collection
}

func NewMealPlanStore(db *mongo.Database) *MealPlanStore {
	return &MealPlanStore{coll: db.Collection(model.MealPlansCollection)}
}

func (s *MealPlanStore) ListMealPlans(ctx context.Context, userID string) ([]model.MealPlanEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	return findAll[model.MealPlanEntry](ctx, cur, err)
}

func (s *MealPlanStore) CreateMealPlan(ctx context.Context, entry *model.MealPlanEntry) error {
	res, err := s.coll.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert meal plan: %w", err)
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MealPlanStore) DeleteMealPlan(ctx context.Context, userID string, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
