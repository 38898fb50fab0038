package docstore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitturk/backend/internal/model"
)

type RecipeStore struct {
	coll *mongo.Collection
}

func NewRecipeStore(db *mongo.Database) *RecipeStore {
	return &RecipeStore{coll: db.Collection(model.RecipesCollection)}
}

// SearchRecipes does a case-insensitive substring match. An empty query
// lists the whole catalog.
func (s *RecipeStore) SearchRecipes(ctx context.Context, query string, skip, limit int64) ([]model.Recipe, int64, error) {
	filter := bson.M{}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"ingredients": pattern},
		}}
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.coll.Find(ctx, filter, opts)
	items, err := findAll[model.Recipe](ctx, cur, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search recipes: %w", err)
	}
	return items, total, nil
}

func (s *RecipeStore) GetRecipe(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (s *RecipeStore) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	res, err := s.coll.InsertOne(ctx, recipe)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	recipe.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *RecipeStore) SetRecipeImage(ctx context.Context, id primitive.ObjectID, imageKey string, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"imageKey": imageKey, "updatedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe image: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReplaceAll swaps the catalog for recipes. Used by the seed command.
func (s *RecipeStore) ReplaceAll(ctx context.Context, recipes []model.Recipe) (int, error) {
	if _, err := s.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("failed to clear recipes: %w", err)
	}
	if len(recipes) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(recipes))
	for i := range recipes {
		docs[i] = recipes[i]
	}
	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipes: %w", err)
	}
	return len(res.InsertedIDs), nil
}
