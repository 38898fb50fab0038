package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitturk/backend/internal/service"
	"github.com/fitturk/backend/internal/testhelpers/mocks"
	"github.com/fitturk/backend/internal/types"
)

func TestChatSend(t *testing.T) {
	userID := uuid.New()

	t.Run("returns reply", func(t *testing.T) {
		chatService := new(mocks.MockChatService)
		chatService.On("Send", mock.Anything, userID, &types.ChatRequest{Message: "Kahvaltıda ne yemeliyim?"}).
			Return(&types.ChatResponse{ConversationID: "c-1", Reply: "Yulaf ezmesi iyi bir seçim."}, nil)

		r := newTestRouter(userID, NewChatHandler(chatService).RegisterRoutes)
		w := doJSON(r, http.MethodPost, "/api/chat", map[string]string{"message": "Kahvaltıda ne yemeliyim?"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"conversationId":"c-1","reply":"Yulaf ezmesi iyi bir seçim."}`, w.Body.String())
		chatService.AssertExpectations(t)
	})

	t.Run("rejects empty and oversized messages", func(t *testing.T) {
		chatService := new(mocks.MockChatService)
		r := newTestRouter(userID, NewChatHandler(chatService).RegisterRoutes)

		for _, msg := range []string{"", strings.Repeat("a", 4001)} {
			w := doJSON(r, http.MethodPost, "/api/chat", map[string]string{"message": msg})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
		chatService.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("model failure is a bad gateway", func(t *testing.T) {
		chatService := new(mocks.MockChatService)
		chatService.On("Send", mock.Anything, userID, mock.Anything).
			Return(nil, service.Upstream("assistant is unavailable, please try again", errors.New("deadline exceeded")))

		r := newTestRouter(userID, NewChatHandler(chatService).RegisterRoutes)
		w := doJSON(r, http.MethodPost, "/api/chat", map[string]string{"message": "merhaba"})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "assistant is unavailable, please try again", decodeBody(t, w)["error"])
	})

	t.Run("requires a session", func(t *testing.T) {
		r := newTestRouter(uuid.Nil, NewChatHandler(new(mocks.MockChatService)).RegisterRoutes)
		w := doJSON(r, http.MethodPost, "/api/chat", map[string]string{"message": "merhaba"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestChatHistory(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("lists conversations as an array", func(t *testing.T) {
		chatService := new(mocks.MockChatService)
		chatService.On("ListConversations", mock.Anything, userID).Return([]types.ConversationSummary{
			{ID: "c-1", Title: "merhaba", CreatedAt: now, UpdatedAt: now, FirstMessage: &types.ChatMessage{ID: "m-1", Role: "user", Content: "merhaba", CreatedAt: now}},
		}, nil)

		r := newTestRouter(userID, NewChatHandler(chatService).RegisterRoutes)
		w := doJSON(r, http.MethodGet, "/api/chat", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var got []types.ConversationSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "merhaba", got[0].FirstMessage.Content)
	})

	t.Run("messages of a foreign conversation", func(t *testing.T) {
		chatService := new(mocks.MockChatService)
		chatService.On("GetMessages", mock.Anything, userID, "c-2").Return(nil, service.NotFound("conversation not found"))

		r := newTestRouter(userID, NewChatHandler(chatService).RegisterRoutes)
		w := doJSON(r, http.MethodGet, "/api/chat/c-2/messages", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
