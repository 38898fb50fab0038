package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitturk/backend/internal/testhelpers"
)

type failingCounter struct{}

func (failingCounter) Increment(context.Context, string, time.Time, time.Duration) (int64, error) {
	return 0, errors.New("counter down")
}

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func hit(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	cfg := RateLimitConfig{Window: time.Minute, Limit: 60, KeyPrefix: "rl"}

	t.Run("should reject the 61st request in a window", func(t *testing.T) {
		rl := NewRateLimiter(NewMemoryCounter(), cfg, zap.NewNop())
		now := time.Date(2026, 1, 1, 12, 0, 5, 0, time.UTC)
		rl.now = func() time.Time { return now }
		router := newLimitedRouter(rl)

		for i := 1; i <= 60; i++ {
			w := hit(router, "10.0.0.1")
			require.Equal(t, http.StatusOK, w.Code, "request %d", i)
		}
		w := hit(router, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"error":"Too Many Requests"}`, w.Body.String())
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "55", w.Header().Get("Retry-After"))

		// other clients keep their own window
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2").Code)
	})

	t.Run("should reset when the window rolls over", func(t *testing.T) {
		rl := NewRateLimiter(NewMemoryCounter(), RateLimitConfig{Window: time.Minute, Limit: 1, KeyPrefix: "rl"}, zap.NewNop())
		now := time.Date(2026, 1, 1, 12, 0, 59, 0, time.UTC)
		rl.now = func() time.Time { return now }
		router := newLimitedRouter(rl)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1").Code)

		now = now.Add(time.Second)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1").Code)
	})

	t.Run("should fail open when the counter errors", func(t *testing.T) {
		rl := NewRateLimiter(failingCounter{}, cfg, zap.NewNop())
		w := hit(newLimitedRouter(rl), "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	})
}

func TestMemoryCounterSweep(t *testing.T) {
	c := NewMemoryCounter()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Increment(context.Background(), "a", now, time.Minute)
	require.NoError(t, err)
	assert.Len(t, c.windows, 1)

	now = now.Add(2 * time.Minute)
	_, err = c.Increment(context.Background(), "b", now, time.Minute)
	require.NoError(t, err)
	assert.Len(t, c.windows, 1)
	assert.Contains(t, c.windows, "b")
}

func TestRedisCounter(t *testing.T) {
	client := testhelpers.SetupRedis(t)

	ctx := context.Background()
	key := "test:" + uuid.NewString()
	start := time.Now().Truncate(time.Minute)
	counter := NewRedisCounter(client)

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Increment(ctx, key, start, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	ttl, err := client.TTL(ctx, key+":"+strconv.FormatInt(start.Unix(), 10)).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}
