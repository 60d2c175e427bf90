package handlers

import (
	"strconv"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
)

const defaultActionLogLimit = 100

type AdminHandler struct {
	catalog     *services.CatalogService
	progression *services.ProgressionService
	points      *services.PointsService
	shop        *services.ShopService
	payments    *services.PaymentService
	actionLogs  audit.Store
}

func NewAdminHandler(
	catalog *services.CatalogService,
	progression *services.ProgressionService,
	points *services.PointsService,
	shop *services.ShopService,
	payments *services.PaymentService,
	actionLogs audit.Store,
) *AdminHandler {
	return &AdminHandler{
		catalog:     catalog,
		progression: progression,
		points:      points,
		shop:        shop,
		payments:    payments,
		actionLogs:  actionLogs,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, serverToServerAuthMiddleware gin.HandlerFunc) {
	admin := router.Group("/admin", serverToServerAuthMiddleware)
	{
		admin.POST("/seasons", h.CreateSeason)
		admin.POST("/seasons/:seasonId/rewards", h.CreateReward)

		users := admin.Group("/users/:userId")
		{
			users.POST("/seasons/:seasonId", h.GrantSeason)
			users.PUT("/seasons/:seasonId/level", h.SetLevel)
			users.PUT("/seasons/:seasonId/xp", h.SetXP)
			users.POST("/seasons/:seasonId/xp", h.AddXP)
			users.PUT("/seasons/:seasonId/premium", h.SetPremium)
			users.POST("/points/credit", h.CreditPoints)
			users.POST("/points/debit", h.DebitPoints)
		}

		admin.GET("/shop/items", h.ListShopItems)
		admin.POST("/shop/items", h.CreateShopItem)
		admin.PUT("/shop/items/:itemId/availability", h.SetShopItemAvailability)

		admin.GET("/payments", h.ListPayments)
		admin.PUT("/payments/:paymentId/status", h.SetPaymentStatus)

		admin.GET("/action-logs", h.ListActionLogs)
	}
}

type CreateSeasonRequest struct {
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	IsPremium    bool      `json:"is_premium"`
	PremiumPrice int       `json:"premium_price" binding:"min=0"`
}

// CreateSeason godoc
// @Summary Create a season
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateSeasonRequest true "Season"
// @Success 201 {object} models.SeasonResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/seasons [post]
func (h *AdminHandler) CreateSeason(c *gin.Context) {
	req := BindModel[CreateSeasonRequest](c)
	if req == nil {
		return
	}

	season := &models.BattlePassSeason{
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsPremium:    req.IsPremium,
		PremiumPrice: req.PremiumPrice,
	}
	if err := h.catalog.CreateSeason(c, season); err != nil {
		Fail(c, err)
		return
	}

	Created(c, season)
}

type CreateRewardRequest struct {
	Name          string            `json:"name" binding:"required"`
	Description   string            `json:"description"`
	Kind          models.RewardKind `json:"kind" binding:"required,oneof=item bonus discount"`
	RequiredLevel int               `json:"required_level" binding:"required,min=1"`
	IsPremium     bool              `json:"is_premium"`
}

// CreateReward godoc
// @Summary Add a reward to a season
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param seasonId path string true "Season ID"
// @Param request body CreateRewardRequest true "Reward"
// @Success 201 {object} models.ApiResponse[models.RewardDefinition]
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/seasons/{seasonId}/rewards [post]
func (h *AdminHandler) CreateReward(c *gin.Context) {
	req := BindModel[CreateRewardRequest](c)
	if req == nil {
		return
	}

	reward := &models.RewardDefinition{
		SeasonID:      c.Param("seasonId"),
		Name:          req.Name,
		Description:   req.Description,
		Kind:          req.Kind,
		RequiredLevel: req.RequiredLevel,
		IsPremium:     req.IsPremium,
	}
	if err := h.catalog.CreateReward(c, reward); err != nil {
		Fail(c, err)
		return
	}

	Created(c, reward)
}

// GrantSeason godoc
// @Summary Enroll a user in a season
// @Description Idempotent: an existing progression is returned unchanged
// @Tags Admin
// @Produce json
// @Security Bearer
// @Param userId path string true "User ID"
// @Param seasonId path string true "Season ID"
// @Success 200 {object} models.ProgressionResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{userId}/seasons/{seasonId} [post]
func (h *AdminHandler) GrantSeason(c *gin.Context) {
	progression, err := h.progression.GrantSeason(c, c.Param("userId"), c.Param("seasonId"))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, progression)
}

type SetLevelRequest struct {
	Level int `json:"level" binding:"required,min=1"`
}

// SetLevel godoc
// @Summary Set a user's level in a season
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param userId path string true "User ID"
// @Param seasonId path string true "Season ID"
// @Param request body SetLevelRequest true "Level"
// @Success 200 {object} models.ProgressionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{userId}/seasons/{seasonId}/level [put]
func (h *AdminHandler) SetLevel(c *gin.Context) {
	req := BindModel[SetLevelRequest](c)
	if req == nil {
		return
	}

	progression, err := h.progression.SetLevel(c, c.Param("userId"), c.Param("seasonId"), req.Level)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, progression)
}

type SetXPRequest struct {
	XP *int `json:"xp" binding:"required,min=0"`
}

// SetXP godoc
// @Summary Overwrite a user's XP in a season
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param userId path string true "User ID"
// @Param seasonId path string true "Season ID"
// @Param request body SetXPRequest true "XP"
// @Success 200 {object} models.ProgressionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{userId}/seasons/{seasonId}/xp [put]
func (h *AdminHandler) SetXP(c *gin.Context) {
	req := BindModel[SetXPRequest](c)
	if req == nil {
		return
	}

	progression, err := h.progression.SetXP(c, c.Param("userId"), c.Param("seasonId"), *req.XP)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, progression)
}

type AddXPRequest struct {
	Delta int `json:"delta" binding:"required,min=1"`
}

// AddXP godoc
// @Summary Add XP to a user's progression
// @Description Increments XP. With automatic level-up enabled the level follows the XP total.
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param userId path string true "User ID"
// @Param seasonId path string true "Season ID"
// @Param request body AddXPRequest true "XP delta"
// @Success 200 {object} models.ProgressionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{userId}/seasons/{seasonId}/xp [post]
func (h *AdminHandler) AddXP(c *gin.Context) {
	req := BindModel[AddXPRequest](c)
	if req == nil {
		return
	}

	progression, err := h.progression.AddXP(c, c.Param("userId"), c.Param("seasonId"), req.Delta)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, progression)
}

type SetPremiumRequest struct {
	IsPremium *bool `json:"is_premium" binding:"required"`
}

// SetPremium godoc
// @Summary Set a user's premium entitlement in a season
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param userId path string true "User ID"
// @Param seasonId path string true "Season ID"
// @Param request body SetPremiumRequest true "Premium flag"
// @Success 200 {object} models.ProgressionResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{userId}/seasons/{seasonId}/premium [put]
func (h *AdminHandler) SetPremium(c *gin.Context) {
	req := BindModel[SetPremiumRequest](c)
	if req == nil {
		return
	}

	progression, err := h.progression.SetPremium(c, c.Param("userId"), c.Param("seasonId"), *req.IsPremium)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, progression)
}

type PointsAmountRequest struct {
	Amount int `json:"amount"`
}

// CreditPoints godoc
// @Summary Credit points to a user
// @Description Negative amounts are accepted while the balance stays non-negative
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param userId path string true "User ID"
// @Param request body PointsAmountRequest true "Amount"
// @Success 200 {object} models.BalanceResponse
// @Failure 422 {object} ErrorResponse "Balance would go negative"
// @Router /admin/users/{userId}/points/credit [post]
func (h *AdminHandler) CreditPoints(c *gin.Context) {
	req := BindModel[PointsAmountRequest](c)
	if req == nil {
		return
	}

	balance, err := h.points.Credit(c, c.Param("userId"), req.Amount)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, balance)
}

// DebitPoints godoc
// @Summary Debit points from a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param userId path string true "User ID"
// @Param request body PointsAmountRequest true "Amount"
// @Success 200 {object} models.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient balance"
// @Router /admin/users/{userId}/points/debit [post]
func (h *AdminHandler) DebitPoints(c *gin.Context) {
	req := BindModel[PointsAmountRequest](c)
	if req == nil {
		return
	}

	balance, err := h.points.Debit(c, c.Param("userId"), req.Amount)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, balance)
}

// ListShopItems godoc
// @Summary List every shop item, available or not
// @Tags Admin
// @Produce json
// @Security Bearer
// @Success 200 {object} models.ApiResponse[[]models.ShopItem]
// @Router /admin/shop/items [get]
func (h *AdminHandler) ListShopItems(c *gin.Context) {
	items, err := h.shop.ListShopItems(c, false)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, items)
}

type CreateShopItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"required,min=1"`
	IsAvailable *bool  `json:"is_available"`
}

// CreateShopItem godoc
// @Summary Create a shop item
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateShopItemRequest true "Item"
// @Success 201 {object} models.ApiResponse[models.ShopItem]
// @Failure 400 {object} ErrorResponse
// @Router /admin/shop/items [post]
func (h *AdminHandler) CreateShopItem(c *gin.Context) {
	req := BindModel[CreateShopItemRequest](c)
	if req == nil {
		return
	}

	item := &models.ShopItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: utils.ValueOr(req.IsAvailable, true),
	}
	if err := h.shop.CreateShopItem(c, item); err != nil {
		Fail(c, err)
		return
	}

	Created(c, item)
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// SetShopItemAvailability godoc
// @Summary Enable or disable a shop item
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param itemId path string true "Item ID"
// @Param request body SetAvailabilityRequest true "Availability"
// @Success 200 {object} models.ApiResponse[models.ShopItem]
// @Failure 404 {object} ErrorResponse
// @Router /admin/shop/items/{itemId}/availability [put]
func (h *AdminHandler) SetShopItemAvailability(c *gin.Context) {
	req := BindModel[SetAvailabilityRequest](c)
	if req == nil {
		return
	}

	item, err := h.shop.SetShopItemAvailability(c, c.Param("itemId"), *req.IsAvailable)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, item)
}

// ListPayments godoc
// @Summary List premium payments, newest first
// @Tags Admin
// @Produce json
// @Security Bearer
// @Success 200 {object} models.ApiResponse[[]models.Payment]
// @Router /admin/payments [get]
func (h *AdminHandler) ListPayments(c *gin.Context) {
	payments, err := h.payments.ListPayments(c)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, payments)
}

type SetPaymentStatusRequest struct {
	Status models.PaymentStatus `json:"status" binding:"required,oneof=pending completed failed"`
}

// SetPaymentStatus godoc
// @Summary Override a payment's status
// @Description Completing a payment grants the premium entitlement
// @Tags Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param paymentId path string true "Payment ID"
// @Param request body SetPaymentStatusRequest true "Status"
// @Success 200 {object} models.ApiResponse[models.Payment]
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/payments/{paymentId}/status [put]
func (h *AdminHandler) SetPaymentStatus(c *gin.Context) {
	req := BindModel[SetPaymentStatusRequest](c)
	if req == nil {
		return
	}

	payment, err := h.payments.SetPaymentStatus(c, c.Param("paymentId"), req.Status)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, payment)
}

// ListActionLogs godoc
// @Summary List recent action logs
// @Tags Admin
// @Produce json
// @Security Bearer
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {object} models.ApiResponse[[]models.ActionLog]
// @Router /admin/action-logs [get]
func (h *AdminHandler) ListActionLogs(c *gin.Context) {
	limit := defaultActionLogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	logs, err := h.actionLogs.ListActionLogs(c, limit)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, logs)
}
