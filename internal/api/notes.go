package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitturk/backend/internal/middleware"
	"github.com/fitturk/backend/internal/service"
	"github.com/fitturk/backend/internal/types"
)

type NoteHandler struct {
	noteService service.INoteService
	appURL      string
}

func NewNoteHandler(noteService service.INoteService, appURL string) *NoteHandler {
	return &NoteHandler{noteService: noteService, appURL: appURL}
}

func (h *NoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	notes := router.Group("/notes")
	{
		notes.GET("", h.ListNotes)
		notes.POST("", h.CreateNote)
		notes.PUT("", middleware.RequireSameOrigin(h.appURL), h.UpdateNote)
		notes.DELETE("", h.DeleteNote)
	}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notes, err := h.noteService.ListNotes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.noteService.UpdateNote(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.OKResponse{OK: true})
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		respondError(c, service.Validation("id is required", map[string]string{"id": "is required"}))
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.OKResponse{OK: true})
}
