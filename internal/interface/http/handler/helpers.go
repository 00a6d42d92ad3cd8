package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/http/middleware"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

// getUserID пользователь из контекста; отсутствие означает, что маршрут собран без AuthMiddleware.
func getUserID(c *gin.Context) (uuid.UUID, error) {
	if id, ok := middleware.UserID(c); ok {
		return id, nil
	}
	return uuid.Nil, apperror.ErrUnauthorized
}

// viewerID пользователь при необязательной авторизации.
func viewerID(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.UserID(c); ok {
		return &id
	}
	return nil
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.ErrInvalidID
	}
	return id, nil
}

// parseIntQuery возвращает fallback для пустого или нечислового значения.
func parseIntQuery(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
