package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinet/internal/infrastructure/ratelimit"
	"cabinet/internal/shared/constants"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils"
)

// RateLimiter throttles a route per authenticated user, falling back to the
// client IP for anonymous requests.
type RateLimiter struct {
	limiter ratelimit.Limiter
	scope   string
	config  ratelimit.Config
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, scope string, config ratelimit.Config, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		config:  config,
		logger:  logger,
	}
}

// Limit must run after RequireAuth. Requests are let through when the limiter backend fails.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.GetString(constants.ContextKeyUserID)
		if caller == "" {
			caller = "ip:" + c.ClientIP()
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), rl.scope+":"+caller, rl.config)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
