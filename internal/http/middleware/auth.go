package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

// ContextUserIDKey ключ пользователя в gin.Context.
const ContextUserIDKey = "userID"

// Authenticator проверяет токен и возвращает id активного пользователя.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthMiddleware требует валидный Bearer токен.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.Error(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), raw)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth выставляет пользователя, если токен валиден, и пропускает запрос в любом случае.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if userID, err := auth.Authenticate(c.Request.Context(), raw); err == nil {
				c.Set(ContextUserIDKey, userID)
			}
		}
		c.Next()
	}
}

// UserID пользователь, выставленный AuthMiddleware или OptionalAuth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Value(ContextUserIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
