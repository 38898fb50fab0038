package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"

	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/models"
)

// RunMigrations brings the relational schema up to date.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// documentIndexes lists the indexes each collection needs for its queries.
var documentIndexes = map[string][]mongo.IndexModel{
	model.RecipesCollection: {
		{
			Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("recipes_text"),
		},
		{
			Keys:    bson.D{{Key: "ingredients", Value: 1}},
			Options: options.Index().SetName("recipes_ingredients"),
		},
		{
			Keys:    bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("recipes_title_id"),
		},
	},
	model.NotesCollection: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("notes_user_created"),
		},
	},
	model.GoalsCollection: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}},
			Options: options.Index().SetName("goals_user_updated"),
		},
	},
	model.MealPlansCollection: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("meal_plans_user_created"),
		},
	},
}

// EnsureIndexes creates the document store indexes. Existing indexes with the
// same definition are left untouched.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, indexes := range documentIndexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
