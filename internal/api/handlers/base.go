package handlers

import (
	"net/http"

	"github.com/ahmetkoprulu/battlepass/internal/api/middleware"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error string `json:"error" example:"Error message describing what went wrong"`
}

// Data related functions
func BindModel[T any](ctx *gin.Context) *T {
	var model T
	if err := ctx.ShouldBindJSON(&model); err != nil {
		BadRequest(ctx, err.Error())
		return nil
	}

	return &model
}

// UserID returns the authenticated caller. Routes behind AuthMiddleware always have one.
func UserID(ctx *gin.Context) string {
	return ctx.GetString(middleware.UserIDKey)
}

// Return Types for Controllers
func Ok(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, models.ApiResponse[any]{
		Success: true,
		Status:  models.StatusSuccess,
		Data:    data,
	})
}

func Created(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, models.ApiResponse[any]{
		Success: true,
		Status:  http.StatusCreated,
		Data:    data,
	})
}

func NotFound(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

func BadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func InternalServerError(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

func Unauthorized(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// Fail hands err to ErrorMiddleware, which picks the status
func Fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.Abort()
}
