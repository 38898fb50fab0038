package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe is a catalog entry. Seeded recipes have no author.
type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Ingredients  []string           `bson:"ingredients" json:"ingredients"`
	Instructions []string           `bson:"instructions" json:"instructions"`
	Category     []string           `bson:"category" json:"category"`
	Macros       `bson:",inline"`
	ImageURL     string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ImageKey     string    `bson:"imageKey,omitempty" json:"-"`
	AuthorID     string    `bson:"authorId,omitempty" json:"authorId,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
