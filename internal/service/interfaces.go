package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/models"
	"github.com/fitturk/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) error
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(user *models.User) (string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.ProfileResponse, error)
}

// IChatService runs assistant turns and reads chat history.
type IChatService interface {
	Send(ctx context.Context, userID uuid.UUID, req *types.ChatRequest) (*types.ChatResponse, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]types.ConversationSummary, error)
	GetMessages(ctx context.Context, userID uuid.UUID, conversationID string) ([]types.ChatMessage, error)
}

type INoteService interface {
	ListNotes(ctx context.Context, userID uuid.UUID) ([]model.Note, error)
	CreateNote(ctx context.Context, userID uuid.UUID, req *types.CreateNoteRequest) (*model.Note, error)
	UpdateNote(ctx context.Context, userID uuid.UUID, req *types.UpdateNoteRequest) error
	DeleteNote(ctx context.Context, userID uuid.UUID, id string) error
}

type IGoalService interface {
	ListGoals(ctx context.Context, userID uuid.UUID) ([]model.Goal, error)
	CreateGoal(ctx context.Context, userID uuid.UUID, req *types.CreateGoalRequest) (*model.Goal, error)
	// SetCompleted reports legacy=true when id is not a document id and
	// nothing was written.
	SetCompleted(ctx context.Context, userID uuid.UUID, id string, completed bool) (legacy bool, err error)
}

type IMealPlanService interface {
	ListEntries(ctx context.Context, userID uuid.UUID) ([]types.MealPlanEntry, error)
	AddEntry(ctx context.Context, userID uuid.UUID, item *types.MealPlanItem) (*types.MealPlanEntry, error)
	DeleteEntry(ctx context.Context, userID uuid.UUID, id string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	SearchRecipes(ctx context.Context, query types.RecipeSearchQuery) (*types.RecipePage, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*model.Recipe, error)
	UploadImage(ctx context.Context, userID uuid.UUID, id, contentType string, data []byte) (string, error)
}

// Generator produces a completion for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Document store contracts. Implementations return model.ErrNotFound when
// a lookup matches nothing; filters always include the owner.

type NoteStore interface {
	ListNotes(ctx context.Context, userID string) ([]model.Note, error)
	CreateNote(ctx context.Context, note *model.Note) error
	UpdateNote(ctx context.Context, userID string, id primitive.ObjectID, update model.NoteUpdate) error
	DeleteNote(ctx context.Context, userID string, id primitive.ObjectID) error
}

type GoalStore interface {
	ListGoals(ctx context.Context, userID string) ([]model.Goal, error)
	CreateGoal(ctx context.Context, goal *model.Goal) error
	SetGoalCompleted(ctx context.Context, userID string, id primitive.ObjectID, completed bool, at time.Time) error
}

type MealPlanStore interface {
	ListMealPlans(ctx context.Context, userID string) ([]model.MealPlanEntry, error)
	CreateMealPlan(ctx context.Context, entry *model.MealPlanEntry) error
	DeleteMealPlan(ctx context.Context, userID string, id primitive.ObjectID) error
}

type RecipeStore interface {
	SearchRecipes(ctx context.Context, query string, skip, limit int64) ([]model.Recipe, int64, error)
	GetRecipe(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *model.Recipe) error
	SetRecipeImage(ctx context.Context, id primitive.ObjectID, imageKey string, at time.Time) error
}

// ImageStore keeps uploaded recipe images.
type ImageStore interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
