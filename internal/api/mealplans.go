package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitturk/backend/internal/service"
	"github.com/fitturk/backend/internal/types"
)

type MealPlanHandler struct {
	mealPlanService service.IMealPlanService
}

func NewMealPlanHandler(mealPlanService service.IMealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.GET("", h.ListEntries)
		plans.POST("", h.AddEntry)
		plans.DELETE("", h.DeleteEntry)
	}
}

func (h *MealPlanHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.mealPlanService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *MealPlanHandler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var item types.MealPlanItem
	if !bindJSON(c, &item) {
		return
	}

	entry, err := h.mealPlanService.AddEntry(c.Request.Context(), userID, &item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *MealPlanHandler) DeleteEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		respondError(c, service.Validation("id is required", map[string]string{"id": "is required"}))
		return
	}

	if err := h.mealPlanService.DeleteEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.OKResponse{OK: true})
}
