package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	"github.com/skillswap/skillswap-backend/internal/pkg/pagination"
)

// ErrorBody тело ответа с ошибкой.
type ErrorBody struct {
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type PageInfo struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Pagination PageInfo    `json:"pagination"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Paginated(c *gin.Context, items interface{}, page pagination.Page, total int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Items: items,
		Pagination: PageInfo{
			Current: page.Number,
			Pages:   page.Pages(total),
			Total:   total,
		},
	})
}

// Error переводит ошибку в ответ. Неизвестные ошибки маскируются как INTERNAL_ERROR.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError && appErr.Code != apperror.ErrCodeServiceUnavailable {
			_ = c.Error(err)
		}
		body := ErrorBody{Message: appErr.Message, Error: string(appErr.Code), Details: appErr.Details}
		if masked(appErr.Code) {
			body = ErrorBody{Message: "Server error", Error: string(appErr.Code)}
		}
		c.JSON(appErr.HTTPStatus, body)
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Message: "Server error",
		Error:   string(apperror.ErrCodeInternal),
	})
}

// masked коды, текст которых может содержать детали базы или драйвера.
func masked(code apperror.ErrorCode) bool {
	return code == apperror.ErrCodeDatabaseError || code == apperror.ErrCodeInternal
}

// BindError ответ на ошибку разбора тела запроса.
func BindError(c *gin.Context, err error) {
	if details := ValidationDetails(err); len(details) > 0 {
		Error(c, apperror.WithDetails(apperror.New(apperror.ErrCodeValidation, details[0].Message), details))
		return
	}
	logger.Log.WithError(err).WithField("path", c.Request.URL.Path).Debug("некорректное тело запроса")
	Error(c, apperror.New(apperror.ErrCodeValidation, "Invalid request body"))
}

func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.New(apperror.ErrCodeBadRequest, message))
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, apperror.New(apperror.ErrCodeUnauthorized, message))
}
