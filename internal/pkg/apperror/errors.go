package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest         ErrorCode = "BAD_REQUEST"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError      ErrorCode = "DATABASE_ERROR"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// Коды жизненного цикла запросов на обмен.
	ErrCodeInvalidID        ErrorCode = "INVALID_ID_FORMAT"
	ErrCodeRequestNotFound  ErrorCode = "REQUEST_NOT_FOUND"
	ErrCodeNotAuthorized    ErrorCode = "NOT_AUTHORIZED"
	ErrCodeAlreadyProcessed ErrorCode = "ALREADY_PROCESSED"
	ErrCodeMatchCreation    ErrorCode = "MATCH_CREATION_ERROR"
	ErrCodeMatchValidation  ErrorCode = "MATCH_VALIDATION_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Details    interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// WithDetails возвращает копию ошибки с дополнительными деталями для клиента.
func WithDetails(err *AppError, details interface{}) *AppError {
	cp := *err
	cp.Details = details
	return &cp
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound, ErrCodeRequestNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden, ErrCodeNotAuthorized:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeConflict, ErrCodeInvalidID,
		ErrCodeAlreadyProcessed, ErrCodeMatchValidation:
		return http.StatusBadRequest
	case ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func hasCode(err error, codes ...ErrorCode) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	for _, code := range codes {
		if appErr.Code == code {
			return true
		}
	}
	return false
}

func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound, ErrCodeRequestNotFound)
}

func IsForbidden(err error) bool {
	return hasCode(err, ErrCodeForbidden, ErrCodeNotAuthorized)
}

func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation, ErrCodeMatchValidation)
}

func IsConflict(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

var (
	ErrUserNotFound        = New(ErrCodeNotFound, "User not found")
	ErrListingNotFound     = New(ErrCodeNotFound, "Skill listing not found")
	ErrMatchNotFound       = New(ErrCodeNotFound, "Match not found or unauthorized")
	ErrMatchRequestMissing = New(ErrCodeRequestNotFound, "Match request not found")
	ErrUnauthorized        = New(ErrCodeUnauthorized, "No token, authorization denied")
	ErrForbidden           = New(ErrCodeForbidden, "Access denied")
	ErrInvalidCredentials  = New(ErrCodeBadRequest, "Invalid credentials")
	ErrInvalidID           = New(ErrCodeInvalidID, "Invalid ID format")
)
