package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireSameOrigin rejects state-changing requests whose Origin header is
// not the origin of appURL. Requests without an Origin header are let through.
func RequireSameOrigin(appURL string) gin.HandlerFunc {
	allowed := originOf(appURL)
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed != "" && origin != "" && !strings.EqualFold(origin, allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// originOf reduces a URL to scheme://host[:port].
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimSuffix(raw, "/")
	}
	return u.Scheme + "://" + u.Host
}
