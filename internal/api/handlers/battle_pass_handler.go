package handlers

import (
	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
)

type BattlePassHandler struct {
	catalog     *services.CatalogService
	progression *services.ProgressionService
	redemption  *services.RedemptionService
	payments    *services.PaymentService
}

func NewBattlePassHandler(
	catalog *services.CatalogService,
	progression *services.ProgressionService,
	redemption *services.RedemptionService,
	payments *services.PaymentService,
) *BattlePassHandler {
	return &BattlePassHandler{
		catalog:     catalog,
		progression: progression,
		redemption:  redemption,
		payments:    payments,
	}
}

// RegisterRoutes registers all battle pass routes
func (h *BattlePassHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	battlePass := router.Group("/battle-pass", authMiddleware)
	{
		battlePass.GET("/seasons", h.ListSeasons)
		battlePass.GET("/seasons/active", h.ListActiveSeasons)
		battlePass.GET("/seasons/:seasonId", h.GetSeasonView)
		battlePass.GET("/seasons/:seasonId/rewards", h.ListRewards)
		battlePass.GET("/seasons/:seasonId/progress", h.GetProgression)
		battlePass.POST("/seasons/:seasonId/premium", h.PurchasePremium)
		battlePass.GET("/me", h.ListMySeasons)

		battlePass.GET("/rewards/:rewardId/eligibility", h.GetEligibility)
		battlePass.POST("/rewards/:rewardId/claim", h.ClaimReward)

		battlePass.GET("/claims", h.ListClaims)
		battlePass.POST("/claims/:claimId/deliver", h.MarkDelivered)
	}
}

// ListSeasons godoc
// @Summary List seasons
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Success 200 {object} models.ApiResponse[[]models.BattlePassSeason]
// @Router /battle-pass/seasons [get]
func (h *BattlePassHandler) ListSeasons(c *gin.Context) {
	seasons, err := h.catalog.ListSeasons(c)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, seasons)
}

// ListActiveSeasons godoc
// @Summary List seasons running now
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Success 200 {object} models.ApiResponse[[]models.BattlePassSeason]
// @Router /battle-pass/seasons/active [get]
func (h *BattlePassHandler) ListActiveSeasons(c *gin.Context) {
	seasons, err := h.catalog.ActiveSeasons(c)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, seasons)
}

// GetSeasonView godoc
// @Summary Get a season with the caller's progress
// @Description Returns the season, the caller's progression, a progress percentage and every reward annotated with its eligibility
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Param seasonId path string true "Season ID"
// @Success 200 {object} models.ApiResponse[models.SeasonView]
// @Failure 404 {object} ErrorResponse
// @Router /battle-pass/seasons/{seasonId} [get]
func (h *BattlePassHandler) GetSeasonView(c *gin.Context) {
	view, err := h.redemption.SeasonView(c, UserID(c), c.Param("seasonId"))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, view)
}

// ListRewards godoc
// @Summary List a season's rewards
// @Description Rewards ordered by required level, ties in creation order
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Param seasonId path string true "Season ID"
// @Success 200 {object} models.ApiResponse[[]models.RewardDefinition]
// @Failure 404 {object} ErrorResponse
// @Router /battle-pass/seasons/{seasonId}/rewards [get]
func (h *BattlePassHandler) ListRewards(c *gin.Context) {
	rewards, err := h.catalog.ListRewards(c, c.Param("seasonId"))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, rewards)
}

// GetProgression godoc
// @Summary Get the caller's progression in a season
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Param seasonId path string true "Season ID"
// @Success 200 {object} models.ProgressionResponse
// @Failure 404 {object} ErrorResponse
// @Router /battle-pass/seasons/{seasonId}/progress [get]
func (h *BattlePassHandler) GetProgression(c *gin.Context) {
	progression, err := h.progression.GetProgression(c, UserID(c), c.Param("seasonId"))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, progression)
}

// ListMySeasons godoc
// @Summary List the caller's seasons
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Success 200 {object} models.ApiResponse[[]models.UserProgression]
// @Router /battle-pass/me [get]
func (h *BattlePassHandler) ListMySeasons(c *gin.Context) {
	progressions, err := h.progression.ListUserSeasons(c, UserID(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, progressions)
}

type EligibilityResponse struct {
	RewardID    string             `json:"reward_id"`
	Eligibility models.Eligibility `json:"eligibility"`
}

// GetEligibility godoc
// @Summary Get the caller's eligibility for a reward
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Param rewardId path string true "Reward ID"
// @Success 200 {object} models.ApiResponse[EligibilityResponse]
// @Failure 404 {object} ErrorResponse
// @Router /battle-pass/rewards/{rewardId}/eligibility [get]
func (h *BattlePassHandler) GetEligibility(c *gin.Context) {
	rewardID := c.Param("rewardId")
	eligibility, err := h.redemption.Eligibility(c, UserID(c), rewardID)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, EligibilityResponse{RewardID: rewardID, Eligibility: eligibility})
}

// ClaimReward godoc
// @Summary Claim a reward
// @Description Claims a reward once. A second claim of the same reward fails with 409.
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Param rewardId path string true "Reward ID"
// @Success 200 {object} models.ClaimResponse
// @Failure 403 {object} ErrorResponse "Locked or premium required"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already claimed"
// @Router /battle-pass/rewards/{rewardId}/claim [post]
func (h *BattlePassHandler) ClaimReward(c *gin.Context) {
	claim, err := h.redemption.Claim(c, UserID(c), c.Param("rewardId"))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, claim)
}

// ListClaims godoc
// @Summary List the caller's claims, newest first
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Success 200 {object} models.ApiResponse[[]models.ClaimRecord]
// @Router /battle-pass/claims [get]
func (h *BattlePassHandler) ListClaims(c *gin.Context) {
	claims, err := h.redemption.ListClaims(c, UserID(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, claims)
}

// MarkDelivered godoc
// @Summary Acknowledge delivery of a claimed reward
// @Tags Battle Pass
// @Produce json
// @Security Bearer
// @Param claimId path string true "Claim ID"
// @Success 200 {object} models.ClaimResponse
// @Failure 404 {object} ErrorResponse
// @Router /battle-pass/claims/{claimId}/deliver [post]
func (h *BattlePassHandler) MarkDelivered(c *gin.Context) {
	claim, err := h.redemption.MarkDelivered(c, UserID(c), c.Param("claimId"))
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, claim)
}

type PurchasePremiumRequest struct {
	Method   models.PaymentMethod `json:"method" binding:"required,oneof=card crypto"`
	Currency string               `json:"currency"`
}

// PurchasePremium godoc
// @Summary Buy the premium pass for a season
// @Description Charges the season's premium price through the payment gateway. Crypto payments carry a 5% surcharge.
// @Tags Battle Pass
// @Accept json
// @Produce json
// @Security Bearer
// @Param seasonId path string true "Season ID"
// @Param request body PurchasePremiumRequest true "Payment details"
// @Success 200 {object} models.ApiResponse[models.Payment]
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Payment declined"
// @Failure 404 {object} ErrorResponse
// @Router /battle-pass/seasons/{seasonId}/premium [post]
func (h *BattlePassHandler) PurchasePremium(c *gin.Context) {
	req := BindModel[PurchasePremiumRequest](c)
	if req == nil {
		return
	}

	payment, err := h.payments.PurchasePremium(c, UserID(c), c.Param("seasonId"), req.Method, req.Currency)
	if err != nil {
		Fail(c, err)
		return
	}

	Ok(c, payment)
}
