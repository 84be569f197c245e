package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cabinet/internal/infrastructure/auth"
	"cabinet/internal/shared/constants"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils"
)

// tokenQueryParam carries the bearer token for websocket upgrades, where
// browsers cannot set an Authorization header.
const tokenQueryParam = "token"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query(tokenQueryParam)

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
				c.Abort()
				return
			}
			token = strings.TrimSpace(parts[1])
		}

		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err, "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID())
		c.Set("email", claims.Email)

		c.Next()
	}
}
