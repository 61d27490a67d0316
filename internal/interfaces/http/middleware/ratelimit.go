package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subtrack/internal/infrastructure/ratelimit"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

// RateLimit rejects requests from a client IP that exceed the configured
// sliding-window budget. Limiter failures allow the request through.
func RateLimit(limiter ratelimit.RateLimiter, cfg ratelimit.Config, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP(), cfg)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, please retry later")
			c.Abort()
			return
		}

		c.Next()
	}
}
