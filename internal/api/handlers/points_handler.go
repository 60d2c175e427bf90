package handlers

import (
	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/gin-gonic/gin"
)

type PointsHandler struct {
	points *services.PointsService
}

func NewPointsHandler(points *services.PointsService) *PointsHandler {
	return &PointsHandler{points: points}
}

func (h *PointsHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	router.GET("/points/balance", authMiddleware, h.GetBalance)
}

// GetBalance godoc
// @Summary Get the caller's points balance
// @Tags Points
// @Produce json
// @Security Bearer
// @Success 200 {object} models.BalanceResponse
// @Router /points/balance [get]
func (h *PointsHandler) GetBalance(c *gin.Context) {
	balance, err := h.points.GetBalance(c, UserID(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, balance)
}
