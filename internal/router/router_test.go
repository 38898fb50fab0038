package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fitturk/backend/internal/middleware"
	"github.com/fitturk/backend/internal/models"
	"github.com/fitturk/backend/internal/service"
	"github.com/fitturk/backend/internal/testhelpers"
	"github.com/fitturk/backend/internal/testhelpers/mocks"
)

const testAppURL = "https://app.fitturk.example"

type testApp struct {
	handler   http.Handler
	db        *gorm.DB
	generator *mocks.MockGenerator
}

// newTestApp wires real auth, profile and chat services over SQLite. The
// rate limit window is an hour so runs never straddle a window boundary.
func newTestApp(t *testing.T, limit int) *testApp {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	enc := testhelpers.NewTestEncryptor(t)
	logger := zap.NewNop()
	generator := new(mocks.MockGenerator)

	r, err := SetupRouter(Dependencies{
		Logger:          logger,
		AuthService:     service.NewAuthService(db, enc, "router-test-secret", time.Hour),
		ProfileService:  service.NewProfileService(db, enc, logger),
		ChatService:     service.NewChatService(db, generator, logger, time.Second),
		NoteService:     service.NewNoteService(new(mocks.MockNoteStore)),
		GoalService:     service.NewGoalService(new(mocks.MockGoalStore)),
		MealPlanService: service.NewMealPlanService(new(mocks.MockMealPlanStore), enc, logger),
		RecipeService:   service.NewRecipeService(new(mocks.MockRecipeStore), nil, nil, logger),
		RateLimiter: middleware.NewRateLimiter(middleware.NewMemoryCounter(), middleware.RateLimitConfig{
			Window:    time.Hour,
			Limit:     limit,
			KeyPrefix: "rl",
		}, logger),
		LoginThrottle: middleware.NewLoginThrottle(time.Second, 10),
		AppURL:        testAppURL,
		CORSOrigins:   []string{testAppURL},
		SessionTTL:    time.Hour,
	})
	require.NoError(t, err)

	return &testApp{handler: r, db: db, generator: generator}
}

func (a *testApp) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(http.MethodPost, "/api/register", map[string]string{"name": "Deniz", "email": email, "password": "s3cret-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/login", map[string]string{"email": email, "password": "s3cret-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func assertSecurityHeaders(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Referrer-Policy"))
	assert.NotEmpty(t, w.Header().Get("Permissions-Policy"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestRateLimitSixtyFirstRequest(t *testing.T) {
	app := newTestApp(t, 60)

	for i := 1; i <= 60; i++ {
		w := app.do(http.MethodGet, "/api/session", nil, "")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := app.do(http.MethodGet, "/api/session", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assertSecurityHeaders(t, w)

	// the limit applies before auth, so protected routes are refused too
	w = app.do(http.MethodGet, "/api/profile", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// health checks are never limited
	w = app.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t, 1000)

	for _, path := range []string{"/api/profile", "/api/chat", "/api/notes", "/api/goals", "/api/meal-plans", "/api/recipes"} {
		w := app.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assertSecurityHeaders(t, w)
	}

	w := app.do(http.MethodGet, "/api/profile", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, 1000)

	w := app.do(http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestChatTurnEndToEnd(t *testing.T) {
	app := newTestApp(t, 1000)
	token := app.login(t, "deniz@example.com")

	app.generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.HasSuffix(prompt, "User: Günde kaç litre su içmeliyim?\nAssistant:")
	})).Return("Genellikle 2-2,5 litre önerilir.", nil).Once()

	w := app.do(http.MethodPost, "/api/chat", map[string]string{"message": "Günde kaç litre su içmeliyim?"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reply struct {
		ConversationID string `json:"conversationId"`
		Reply          string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.NotEmpty(t, reply.ConversationID)
	assert.Equal(t, "Genellikle 2-2,5 litre önerilir.", reply.Reply)

	w = app.do(http.MethodGet, "/api/chat", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, reply.ConversationID, summaries[0]["id"])

	w = app.do(http.MethodGet, "/api/chat/"+reply.ConversationID+"/messages", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var messages []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0]["role"])
	assert.Equal(t, "assistant", messages[1]["role"])

	// another account cannot read the conversation
	other := app.login(t, "ece@example.com")
	w = app.do(http.MethodGet, "/api/chat/"+reply.ConversationID+"/messages", nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatUpstreamFailureWritesNothing(t *testing.T) {
	app := newTestApp(t, 1000)
	token := app.login(t, "deniz@example.com")

	app.generator.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("upstream timeout")).Twice()

	w := app.do(http.MethodPost, "/api/chat", map[string]string{"message": "merhaba"}, token)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	app.generator.AssertNumberOfCalls(t, "Generate", 2)

	var conversations, messages int64
	require.NoError(t, app.db.Model(&models.Conversation{}).Count(&conversations).Error)
	require.NoError(t, app.db.Model(&models.Message{}).Count(&messages).Error)
	assert.Zero(t, conversations)
	assert.Zero(t, messages)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t, 1000)
	body := map[string]string{"email": "dup@example.com", "password": "s3cret-pass"}

	assert.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/register", body, "").Code)
	assert.Equal(t, http.StatusConflict, app.do(http.MethodPost, "/api/register", body, "").Code)
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t, 1000)

	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", testAppURL)
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, testAppURL, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
