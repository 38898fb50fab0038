package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealPlanEntry keeps its slot details encrypted in Payload; only ownership
// and timestamps are stored in the clear.
type MealPlanEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Payload   string             `bson:"payload"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
