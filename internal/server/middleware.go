package server

import (
	"crypto/subtle"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthRequired checks the bearer token against the configured API token.
// A deployment without API_TOKEN set rejects everything rather than running
// open.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := s.cfg.APIToken
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		header := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(presented)), []byte(token)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}

func formatSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// AssistantRateLimit throttles the chat endpoint; model calls are slow and
// priced per token. Disabled limiter passes everything through.
func (s *Server) AssistantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.assistantLimiter == nil || !s.assistantLimiter.Enabled() {
			c.Next()
			return
		}

		result, err := s.assistantLimiter.Allow(c.Request.Context())
		if err != nil {
			// Redis being down should not take the assistant with it.
			c.Next()
			return
		}
		if !result.Allowed {
			if result.RetryAfter > 0 {
				c.Header("Retry-After", formatSeconds(result.RetryAfter))
			}
			AbortWithError(c, ErrRateLimited)
			return
		}

		c.Next()
	}
}
