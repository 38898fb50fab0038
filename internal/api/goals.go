package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitturk/backend/internal/middleware"
	"github.com/fitturk/backend/internal/service"
	"github.com/fitturk/backend/internal/types"
)

// legacyIDNote tells the client its locally generated id was not stored.
const legacyIDNote = "legacy-id"

type GoalHandler struct {
	goalService service.IGoalService
	appURL      string
}

func NewGoalHandler(goalService service.IGoalService, appURL string) *GoalHandler {
	return &GoalHandler{goalService: goalService, appURL: appURL}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.ListGoals)
		goals.POST("", h.CreateGoal)
		goals.PUT("", middleware.RequireSameOrigin(h.appURL), h.UpdateGoal)
	}
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// UpdateGoal only toggles completion; the rest of a goal is owned by the client.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	legacy, err := h.goalService.SetCompleted(c.Request.Context(), userID, req.ID, *req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := types.UpdateGoalResponse{OK: true}
	if legacy {
		resp.Note = legacyIDNote
	}
	c.JSON(http.StatusOK, resp)
}
