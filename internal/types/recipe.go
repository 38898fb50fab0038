package types

import "github.com/fitturk/backend/internal/model"

const (
	DefaultRecipePageSize = 12
	MaxRecipePageSize     = 50
)

// RecipeSearchQuery is bound from the query string of GET /api/recipes.
type RecipeSearchQuery struct {
	Query    string `form:"q" binding:"max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=50"`
}

// Normalize fills in paging defaults.
func (q *RecipeSearchQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultRecipePageSize
	}
	if q.PageSize > MaxRecipePageSize {
		q.PageSize = MaxRecipePageSize
	}
}

type RecipePage struct {
	Items    []model.Recipe `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int64          `json:"total"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string   `json:"title" binding:"required,min=1,max=200"`
	Description  string   `json:"description" binding:"max=2000"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1,max=100,dive,min=1,max=200"`
	Instructions []string `json:"instructions" binding:"required,min=1,max=100,dive,min=1,max=2000"`
	Category     []string `json:"category" binding:"max=10,dive,min=1,max=50"`
	Calories     int      `json:"calories" binding:"gte=0"`
	Protein      float64  `json:"protein" binding:"gte=0"`
	Fat          float64  `json:"fat" binding:"gte=0"`
	Carbs        float64  `json:"carbs" binding:"gte=0"`
}

type RecipeImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
