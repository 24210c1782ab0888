package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/emirkaya/schoolhub/internal/app/auth"
	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
	"github.com/emirkaya/schoolhub/internal/pkg/auth"
)

// actorContextKey is the gin context key carrying the authenticated actor.
const actorContextKey = "actor"

// AuthMiddleware resolves session tokens to actors
type AuthMiddleware struct {
	sessions *services.SessionService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *services.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// SessionAuth validates the bearer session token and stores the resolved
// actor on the request context. Tokens are accepted from the Authorization
// header only.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
			return
		}

		token, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid authorization header"))
			return
		}

		actor, err := m.sessions.Validate(c.Request.Context(), token)
		if err != nil {
			switch {
			case apperrors.Is(err, apperrors.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrorCodeExpiredToken, "Session has expired"))
			case apperrors.Is(err, apperrors.ErrAccountDisabled):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrorCodeAccountDisabled, "Account is disabled"))
			case apperrors.Is(err, apperrors.ErrTokenInvalid):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid session token"))
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error"))
			}
			return
		}

		c.Set(actorContextKey, *actor)
		c.Next()
	}
}

// RoleRequired allows only the listed roles past. It must run after
// SessionAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrorCodeForbidden, "Permission denied"))
	}
}

// ActorFromContext returns the authenticated actor stored by SessionAuth.
func ActorFromContext(c *gin.Context) (appauth.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return appauth.Actor{}, false
	}
	actor, ok := value.(appauth.Actor)
	return actor, ok
}
