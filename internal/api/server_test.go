package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/api"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/internal/services/ledger"
	"github.com/ahmetkoprulu/battlepass/internal/services/payment"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const adminToken = "test-admin-token"

type ServerTestSuite struct {
	suite.Suite

	server    *api.Server
	userToken string
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	actionLogs := audit.NewMemoryActionLogStore()
	config := &models.Config{
		AdminToken:      adminToken,
		CatalogCacheTTL: time.Minute,
		ProgressConfig:  models.ProgressConfig{AutoLevelUp: true, XPPerLevel: 1000},
		RateLimitConfig: models.RateLimitConfig{RPS: 1000, Burst: 1000},
	}
	s.server = api.NewServer(config, api.Dependencies{
		BattlePassStore: battlepass.NewMemoryBattlePassStore(),
		LedgerStore:     ledger.NewMemoryLedgerStore(),
		PaymentStore:    payment.NewMemoryPaymentStore(),
		ActionLogStore:  actionLogs,
		Publisher:       audit.StorePublisher{Store: actionLogs},
		Gateway:         payment.NewSimulatedGateway(0),
		RewardCache:     cache.NewMemoryCache[[]models.RewardDefinition](),
		ShopCache:       cache.NewMemoryCache[[]models.ShopItem](),
	})

	token, err := utils.GenerateJWTTokenWithClaims(utils.Claims{UserID: "player-1"}, time.Hour)
	s.Require().NoError(err)
	s.userToken = token
}

func (s *ServerTestSuite) TearDownTest() {
	s.Require().NoError(s.server.Shutdown(context.Background()))
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.server.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](s *ServerTestSuite, rec *httptest.ResponseRecorder) T {
	var resp models.ApiResponse[T]
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func (s *ServerTestSuite) createSeason() models.BattlePassSeason {
	now := time.Now().UTC()
	rec := s.do(http.MethodPost, "/api/v1/admin/seasons", adminToken, map[string]any{
		"name":       "Season 1",
		"start_date": now.Add(-time.Hour),
		"end_date":   now.Add(24 * time.Hour),
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.BattlePassSeason](s, rec)
}

func (s *ServerTestSuite) createReward(seasonID string, level int, premium bool) models.RewardDefinition {
	rec := s.do(http.MethodPost, "/api/v1/admin/seasons/"+seasonID+"/rewards", adminToken, map[string]any{
		"name":           "Reward",
		"kind":           models.RewardKindItem,
		"required_level": level,
		"is_premium":     premium,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.RewardDefinition](s, rec)
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestUserRoutesRequireToken() {
	rec := s.do(http.MethodGet, "/api/v1/battle-pass/seasons", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/battle-pass/seasons", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/battle-pass/seasons", s.userToken, nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestAdminRoutesRequireAdminToken() {
	rec := s.do(http.MethodGet, "/api/v1/admin/payments", s.userToken, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/admin/payments", adminToken, nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestClaimFlow() {
	season := s.createSeason()
	reward := s.createReward(season.ID, 2, false)

	rec := s.do(http.MethodPost, "/api/v1/battle-pass/rewards/"+reward.ID+"/claim", s.userToken, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/admin/users/player-1/seasons/"+season.ID, adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/battle-pass/rewards/"+reward.ID+"/claim", s.userToken, nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/admin/users/player-1/seasons/"+season.ID+"/xp", adminToken, map[string]any{"delta": 1200})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(2, decode[models.UserProgression](s, rec).CurrentLevel)

	rec = s.do(http.MethodPost, "/api/v1/battle-pass/rewards/"+reward.ID+"/claim", s.userToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	claim := decode[models.ClaimRecord](s, rec)
	s.Equal(models.ClaimStatusClaimed, claim.Status)

	rec = s.do(http.MethodPost, "/api/v1/battle-pass/rewards/"+reward.ID+"/claim", s.userToken, nil)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/battle-pass/seasons/"+season.ID, s.userToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	view := decode[models.SeasonView](s, rec)
	s.Require().Len(view.Rewards, 1)
	s.Equal(models.EligibilityAlreadyClaimed, view.Rewards[0].Eligibility)
	s.Equal(100, view.ProgressPercent)
}

func (s *ServerTestSuite) TestPremiumPurchaseFlow() {
	season := s.createSeason()
	reward := s.createReward(season.ID, 1, true)

	rec := s.do(http.MethodPost, "/api/v1/battle-pass/seasons/"+season.ID+"/premium", s.userToken, map[string]any{"method": "cash"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/battle-pass/seasons/"+season.ID+"/premium", s.userToken, map[string]any{
		"method":   "crypto",
		"currency": "BTC",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	p := decode[models.Payment](s, rec)
	s.Equal(models.PaymentStatusCompleted, p.Status)
	s.Equal(523, p.Amount)

	rec = s.do(http.MethodGet, "/api/v1/battle-pass/rewards/"+reward.ID+"/eligibility", s.userToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(models.EligibilityClaimablePremium, decode[struct {
		Eligibility models.Eligibility `json:"eligibility"`
	}](s, rec).Eligibility)
}

func (s *ServerTestSuite) TestShopPurchaseFlow() {
	rec := s.do(http.MethodPost, "/api/v1/admin/shop/items", adminToken, map[string]any{"name": "Sticker", "price": 30})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[models.ShopItem](s, rec)
	s.True(item.IsAvailable)

	rec = s.do(http.MethodPost, "/api/v1/shop/items/"+item.ID+"/purchase", s.userToken, nil)
	s.Equal(http.StatusPaymentRequired, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/admin/users/player-1/points/credit", adminToken, map[string]any{"amount": 30})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/shop/items/"+item.ID+"/purchase", s.userToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(0, decode[models.PurchaseResult](s, rec).Balance.Points)

	rec = s.do(http.MethodGet, "/api/v1/points/balance", s.userToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(0, decode[models.PointsBalance](s, rec).Points)

	rec = s.do(http.MethodPost, "/api/v1/admin/users/player-1/points/credit", adminToken, map[string]any{"amount": -1})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/admin/shop/items/"+item.ID+"/availability", adminToken, map[string]any{"is_available": false})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/shop/items/"+item.ID+"/purchase", s.userToken, nil)
	s.Equal(http.StatusGone, rec.Code)
}

func (s *ServerTestSuite) TestActionLogsAreRecorded() {
	s.createSeason()

	rec := s.do(http.MethodGet, "/api/v1/admin/action-logs?limit=10", adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	logs := decode[[]models.ActionLog](s, rec)
	s.Require().NotEmpty(logs)
	s.Equal(models.ActionBattlePassCreate, logs[0].ActionType)
}
