package handlers

import (
	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	shop   *services.ShopService
	points *services.PointsService
}

func NewShopHandler(shop *services.ShopService, points *services.PointsService) *ShopHandler {
	return &ShopHandler{shop: shop, points: points}
}

func (h *ShopHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	shop := router.Group("/shop", authMiddleware)
	{
		shop.GET("/items", h.ListItems)
		shop.POST("/items/:itemId/purchase", h.Purchase)
		shop.GET("/purchases", h.ListPurchases)
		shop.POST("/purchases/:purchaseId/receive", h.MarkReceived)
	}
}

// ListItems godoc
// @Summary List shop items available for purchase
// @Tags Shop
// @Produce json
// @Security Bearer
// @Success 200 {object} models.ApiResponse[[]models.ShopItem]
// @Router /shop/items [get]
func (h *ShopHandler) ListItems(c *gin.Context) {
	items, err := h.shop.ListShopItems(c, true)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, items)
}

// Purchase godoc
// @Summary Buy a shop item with points
// @Description Debits the item price and records the purchase in one step
// @Tags Shop
// @Produce json
// @Security Bearer
// @Param itemId path string true "Item ID"
// @Success 200 {object} models.PurchaseResponse
// @Failure 402 {object} ErrorResponse "Insufficient balance"
// @Failure 404 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse "Item unavailable"
// @Router /shop/items/{itemId}/purchase [post]
func (h *ShopHandler) Purchase(c *gin.Context) {
	result, err := h.points.Purchase(c, UserID(c), c.Param("itemId"))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, result)
}

// ListPurchases godoc
// @Summary List the caller's purchases, newest first
// @Tags Shop
// @Produce json
// @Security Bearer
// @Success 200 {object} models.ApiResponse[[]models.PurchaseRecord]
// @Router /shop/purchases [get]
func (h *ShopHandler) ListPurchases(c *gin.Context) {
	purchases, err := h.points.ListPurchases(c, UserID(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, purchases)
}

// MarkReceived godoc
// @Summary Mark a purchase as received
// @Tags Shop
// @Produce json
// @Security Bearer
// @Param purchaseId path string true "Purchase ID"
// @Success 200 {object} models.ApiResponse[models.PurchaseRecord]
// @Failure 404 {object} ErrorResponse
// @Router /shop/purchases/{purchaseId}/receive [post]
func (h *ShopHandler) MarkReceived(c *gin.Context) {
	purchase, err := h.points.MarkPurchaseReceived(c, UserID(c), c.Param("purchaseId"))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, purchase)
}
