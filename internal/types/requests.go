package types

import (
	"time"

	"github.com/fitturk/backend/internal/model"
)

// RegisterRequest represents the registration body
type RegisterRequest struct {
	Name     string `json:"name" binding:"omitempty,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=128"`
}

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResponse struct {
	OK    bool        `json:"ok"`
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

type SessionResponse struct {
	Status string       `json:"status"`
	User   *SessionUser `json:"user,omitempty"`
}

// ChatRequest carries one user turn.
type ChatRequest struct {
	ConversationID string `json:"conversationId" binding:"omitempty,max=64"`
	Message        string `json:"message" binding:"required,min=1,max=4000"`
}

type ChatResponse struct {
	ConversationID string `json:"conversationId"`
	Reply          string `json:"reply"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationSummary is one row of GET /api/chat.
type ConversationSummary struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	FirstMessage *ChatMessage `json:"firstMessage,omitempty"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title" binding:"required,min=1,max=200"`
	Content string   `json:"content" binding:"max=10000"`
	Tags    []string `json:"tags" binding:"max=20,dive,min=1,max=50"`
}

type UpdateNoteRequest struct {
	ID        string   `json:"_id" binding:"required"`
	Title     *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Content   *string  `json:"content" binding:"omitempty,max=10000"`
	Tags      []string `json:"tags" binding:"omitempty,max=20,dive,min=1,max=50"`
	Completed *bool    `json:"completed"`
}

type CreateGoalRequest struct {
	Title        string            `json:"title" binding:"required,min=1,max=200"`
	Description  string            `json:"description" binding:"max=2000"`
	Type         model.GoalType    `json:"type" binding:"required,oneof=weight fitness nutrition lifestyle"`
	TargetValue  float64           `json:"targetValue"`
	CurrentValue float64           `json:"currentValue"`
	Unit         string            `json:"unit" binding:"max=20"`
	Deadline     *time.Time        `json:"deadline"`
	Milestones   []model.Milestone `json:"milestones" binding:"max=50"`
}

// UpdateGoalRequest only carries the completion toggle; other fields are ignored.
type UpdateGoalRequest struct {
	ID        string `json:"_id" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

type UpdateGoalResponse struct {
	OK   bool   `json:"ok"`
	Note string `json:"note,omitempty"`
}

// MealPlanItem is the encrypted part of a meal plan entry.
type MealPlanItem struct {
	Day         string `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	MealType    string `json:"mealType" binding:"required,oneof=breakfast morning_snack lunch afternoon_snack dinner night_snack"`
	RecipeID    string `json:"recipeId" binding:"required,max=64"`
	RecipeTitle string `json:"recipeTitle" binding:"required,max=200"`
	Calories    int    `json:"calories" binding:"gte=0,lte=10000"`
}

type MealPlanEntry struct {
	ID string `json:"_id"`
	MealPlanItem
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
