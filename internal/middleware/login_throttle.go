package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginThrottle slows down credential guessing with a token bucket per
// client IP, on top of the global fixed window.
type LoginThrottle struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

// NewLoginThrottle allows burst attempts, refilled one per interval.
func NewLoginThrottle(interval time.Duration, burst int) *LoginThrottle {
	return &LoginThrottle{
		visitors: make(map[string]*visitor),
		every:    rate.Every(interval),
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

func (t *LoginThrottle) limiter(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if now.Sub(t.lastSweep) > t.idle {
		for k, v := range t.visitors {
			if now.Sub(v.lastSeen) > t.idle {
				delete(t.visitors, k)
			}
		}
		t.lastSweep = now
	}

	v, ok := t.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.every, t.burst)}
		t.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Middleware answers 429 when the caller has used up its attempts.
func (t *LoginThrottle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
		c.Next()
	}
}
