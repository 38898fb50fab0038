package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitturk/backend/internal/model"
)

type GoalStore struct {
	coll *mongo.Collection
}

func NewGoalStore(db *mongo.Database) *GoalStore {
	return &GoalStore{coll: db.Collection(model.GoalsCollection)}
}

func (s *GoalStore) ListGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	return findAll[model.Goal](ctx, cur, err)
}

func (s *GoalStore) CreateGoal(ctx context.Context, goal *model.Goal) error {
	res, err := s.coll.InsertOne(ctx, goal)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	goal.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *GoalStore) SetGoalCompleted(ctx context.Context, userID string, id primitive.ObjectID, completed bool, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"completed": completed, "updatedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
