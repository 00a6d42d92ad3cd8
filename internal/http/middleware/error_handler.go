package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

// ErrorHandler логирует ошибки, прикреплённые к запросу через c.Error.
// Если handler ничего не записал, отдаёт ответ по последней ошибке.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			logger.Log.WithFields(logrus.Fields{
				"error":  e.Err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"status": c.Writer.Status(),
			}).Error("request error")
		}

		if c.Writer.Written() {
			return
		}
		last := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(last, &appErr) {
			last = apperror.Wrap(last, apperror.ErrCodeInternal, "Server error")
		}
		response.Error(c, last)
	}
}
