package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitturk/backend/internal/service"
	"github.com/fitturk/backend/internal/types"
)

// multipartOverhead leaves room for form boundaries around the image part.
const multipartOverhead = 1 << 20

type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.POST("/:id/image", h.UploadImage)
	}
}

// ListRecipes answers GET /api/recipes?q&page&pageSize.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var query types.RecipeSearchQuery
	if !bindQuery(c, &query) {
		return
	}

	page, err := h.recipeService.SearchRecipes(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// UploadImage accepts a multipart form with an "image" file part.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+multipartOverhead)
	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, service.Validation("image file is required", map[string]string{"image": "is required"}))
		return
	}
	if fh.Size > service.MaxImageSize {
		respondError(c, service.Validation("image is too large", map[string]string{"image": "must be at most 5MB"}))
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, service.Internal("failed to open upload", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxImageSize+1))
	if err != nil {
		respondError(c, service.Internal("failed to read upload", err))
		return
	}

	url, err := h.recipeService.UploadImage(c.Request.Context(), userID, c.Param("id"), fh.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RecipeImageResponse{ImageURL: url})
}
