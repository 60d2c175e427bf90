package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	_ "github.com/ahmetkoprulu/battlepass/docs" // swagger docs
	"github.com/ahmetkoprulu/battlepass/internal/api/handlers"
	"github.com/ahmetkoprulu/battlepass/internal/api/middleware"
	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/internal/services/ledger"
	"github.com/ahmetkoprulu/battlepass/internal/services/payment"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the backends the server is built on. Caches and health
// checks are optional.
type Dependencies struct {
	BattlePassStore battlepass.Store
	LedgerStore     ledger.Store
	PaymentStore    payment.Store
	ActionLogStore  audit.Store
	Publisher       audit.Publisher
	Gateway         payment.Gateway
	RewardCache     cache.Cache[[]models.RewardDefinition]
	ShopCache       cache.Cache[[]models.ShopItem]
	HealthChecks    map[string]handlers.HealthCheck
}

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	catalog     *services.CatalogService
	progression *services.ProgressionService
	redemption  *services.RedemptionService
	points      *services.PointsService
	shop        *services.ShopService
	payments    *services.PaymentService

	stop     chan struct{}
	stopOnce sync.Once
}

func NewServer(config *models.Config, deps Dependencies) *Server {
	var policy services.LevelPolicy
	if config.ProgressConfig.AutoLevelUp {
		policy = services.FixedThresholdPolicy{XPPerLevel: config.ProgressConfig.XPPerLevel}
	}

	catalog := services.NewCatalogService(deps.BattlePassStore, deps.RewardCache, config.CatalogCacheTTL, deps.Publisher)
	progression := services.NewProgressionService(deps.BattlePassStore, policy, deps.Publisher)
	redemption := services.NewRedemptionService(deps.BattlePassStore, catalog, deps.Publisher, config.ProgressConfig.XPPerLevel)
	points := services.NewPointsService(deps.LedgerStore, deps.Publisher)
	shop := services.NewShopService(deps.LedgerStore, deps.ShopCache, config.CatalogCacheTTL, deps.Publisher)
	payments := services.NewPaymentService(deps.PaymentStore, deps.Gateway, deps.BattlePassStore, progression, deps.Publisher)

	server := &Server{
		router:      gin.New(),
		catalog:     catalog,
		progression: progression,
		redemption:  redemption,
		points:      points,
		shop:        shop,
		payments:    payments,
		stop:        make(chan struct{}),
	}

	server.router.Use(gin.Recovery())
	server.router.Use(middleware.RequestLogger())
	server.router.Use(middleware.ErrorMiddleware())
	if config.RateLimitConfig.RPS > 0 {
		server.router.Use(middleware.RateLimit(server.stop, config.RateLimitConfig.RPS, config.RateLimitConfig.Burst))
	}

	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)
	battlePassHandler := handlers.NewBattlePassHandler(catalog, progression, redemption, payments)
	shopHandler := handlers.NewShopHandler(shop, points)
	pointsHandler := handlers.NewPointsHandler(points)
	adminHandler := handlers.NewAdminHandler(catalog, progression, points, shop, payments, deps.ActionLogStore)
	authMiddleware := middleware.AuthMiddleware()
	serverToServerAuthMiddleware := middleware.ServerToServerAuthMiddleware(config.AdminToken)

	healthHandler.RegisterRoutes(server.router.Group(""))

	v1 := server.router.Group("/api/v1")
	{
		battlePassHandler.RegisterRoutes(v1, authMiddleware)
		shopHandler.RegisterRoutes(v1, authMiddleware)
		pointsHandler.RegisterRoutes(v1, authMiddleware)
		adminHandler.RegisterRoutes(v1, serverToServerAuthMiddleware)
	}

	// Swagger documentation
	server.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return server
}

func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
