package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the length of one fixed window
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// KeyPrefix namespaces counter keys
	KeyPrefix string
}

// Counter counts hits per key inside fixed windows.
type Counter interface {
	// Increment records a hit on key in the window starting at windowStart
	// and returns the window's count including this hit.
	Increment(ctx context.Context, key string, windowStart time.Time, window time.Duration) (int64, error)
}

// MemoryCounter keeps windows in process memory. Each instance has its own
// counts, so the limit is per process.
type MemoryCounter struct {
	mu        sync.Mutex
	windows   map[string]*memoryWindow
	lastSweep time.Time
	now       func() time.Time
}

type memoryWindow struct {
	start time.Time
	count int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

func (m *MemoryCounter) Increment(_ context.Context, key string, windowStart time.Time, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(window)

	w, ok := m.windows[key]
	if !ok || !w.start.Equal(windowStart) {
		w = &memoryWindow{start: windowStart}
		m.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// sweep drops expired windows at most once per window length.
func (m *MemoryCounter) sweep(window time.Duration) {
	now := m.now()
	if now.Sub(m.lastSweep) < window {
		return
	}
	m.lastSweep = now
	for key, w := range m.windows {
		if !now.Before(w.start.Add(window)) {
			delete(m.windows, key)
		}
	}
}

// RedisCounter shares windows between instances through Redis.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Increment(ctx context.Context, key string, windowStart time.Time, window time.Duration) (int64, error) {
	redisKey := fmt.Sprintf("%s:%d", key, windowStart.Unix())

	pipe := r.client.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incrCmd.Val(), nil
}

// RateLimiter enforces a fixed-window limit per client IP
type RateLimiter struct {
	counter Counter
	config  RateLimitConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(counter Counter, config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

// Middleware answers 429 once a client IP exceeds the limit in the current
// window. Counter failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), c.ClientIP())
		if err != nil {
			rl.logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(resetTime.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too Many Requests"})
			return
		}

		c.Next()
	}
}

// IsAllowed records a hit for key.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	resetTime := windowStart.Add(rl.config.Window)

	count, err := rl.counter.Increment(ctx, rl.config.KeyPrefix+":"+key, windowStart, rl.config.Window)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	remaining := rl.config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(rl.config.Limit), remaining, resetTime, nil
}
