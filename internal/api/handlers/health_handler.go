package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// RegisterRoutes registers all routes for health checks
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Check)
}

// @Summary Health check
// @Description Check if the API and its dependencies are reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{Status: "healthy"}
	if len(h.checks) > 0 {
		response.Dependencies = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			response.Status = "degraded"
			response.Dependencies[name] = err.Error()
			continue
		}
		response.Dependencies[name] = "ok"
	}

	if response.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	Ok(c, response)
}
