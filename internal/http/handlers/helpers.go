package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/http/middleware"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

func currentUserID(c *gin.Context) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}
	return id, nil
}
