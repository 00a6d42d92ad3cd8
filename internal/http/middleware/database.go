package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

// ConnectivityChecker источник состояния соединения с базой (db.Monitor).
type ConnectivityChecker interface {
	Connected() bool
}

var errDatabaseUnavailable = apperror.New(apperror.ErrCodeServiceUnavailable, "Database connection unavailable. Please try again later.")

// RequireDatabase отвечает 503, пока монитор считает базу недоступной.
func RequireDatabase(monitor ConnectivityChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !monitor.Connected() {
			response.Error(c, apperror.WithDetails(errDatabaseUnavailable, "Service is temporarily unavailable due to database connectivity issues"))
			c.Abort()
			return
		}
		c.Next()
	}
}
