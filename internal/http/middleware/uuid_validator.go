package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

// UUIDValidator отклоняет запрос с INVALID_ID_FORMAT до обращения к хранилищу.
// Использование: router.PUT("/match-requests/:id/accept", UUIDValidator("id"), handler.Accept)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param(paramName)); err != nil {
			response.Error(c, apperror.ErrInvalidID)
			c.Abort()
			return
		}
		c.Next()
	}
}
