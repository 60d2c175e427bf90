package middleware

import (
	"errors"
	"net/http"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppError represents a custom application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// StatusFor maps domain errors to HTTP status codes. Store faults are 503
// so clients know a retry may succeed.
func StatusFor(err error) int {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr.Code
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyClaimed), errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInsufficientBalance), errors.Is(err, models.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, models.ErrItemUnavailable):
		return http.StatusGone
	case errors.Is(err, models.ErrWouldGoNegative):
		return http.StatusUnprocessableEntity
	case models.IsRetryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMiddleware renders the last error a handler attached with c.Error
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		code := StatusFor(err)

		message := err.Error()
		switch code {
		case http.StatusInternalServerError:
			utils.Logger.Error("Unhandled error", zap.String("path", c.Request.URL.Path), zap.Error(err))
			message = "internal server error"
		case http.StatusServiceUnavailable:
			message = "service temporarily unavailable"
		}

		c.JSON(code, gin.H{
			"error": message,
		})
	}
}

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

var (
	ErrUnauthorized = NewAppError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden    = NewAppError(http.StatusForbidden, "forbidden")
	ErrBadRequest   = NewAppError(http.StatusBadRequest, "bad request")
)
