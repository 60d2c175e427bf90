package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	"github.com/ahmetkoprulu/battlepass/common/data"
	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/api"
	"github.com/ahmetkoprulu/battlepass/internal/api/handlers"
	"github.com/ahmetkoprulu/battlepass/internal/config"
	"github.com/ahmetkoprulu/battlepass/internal/mq"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/internal/services/ledger"
	"github.com/ahmetkoprulu/battlepass/internal/services/payment"
	"github.com/ahmetkoprulu/battlepass/models"
	"go.uber.org/zap"
)

// @title Battle Pass API
// @version 1.0
// @description Battle pass progression, reward redemption and points ledger
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg := config.LoadEnvironment()

	if cfg.ElasticUrl != "" {
		utils.InitElasticLogger(cfg.ElasticUrl, cfg.ServiceName)
	} else {
		utils.InitLogger(cfg.ServiceName)
	}
	defer utils.Logger.Sync()

	if cfg.JWTSecret == "" {
		utils.Logger.Fatal("JWT_SECRET is required")
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	ctx := context.Background()
	deps := api.Dependencies{
		Gateway:      payment.NewSimulatedGateway(cfg.PaymentDelay),
		HealthChecks: map[string]handlers.HealthCheck{},
	}

	if cfg.DatabaseURL != "" {
		db, err := data.LoadPostgres(ctx, cfg.DatabaseURL, cfg.DatabaseName, cfg.MigrationsPath)
		if err != nil {
			utils.Logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		deps.BattlePassStore = battlepass.NewPgBattlePassStore(db)
		deps.LedgerStore = ledger.NewPgLedgerStore(db)
		deps.PaymentStore = payment.NewPgPaymentStore(db)
		deps.ActionLogStore = audit.NewPgActionLogStore(db)
		deps.HealthChecks["postgres"] = db.Ping
	} else {
		utils.Logger.Warn("DATABASE_URL is not set, using in-memory stores")
		deps.BattlePassStore = battlepass.NewMemoryBattlePassStore()
		deps.LedgerStore = ledger.NewMemoryLedgerStore()
		deps.PaymentStore = payment.NewMemoryPaymentStore()
		deps.ActionLogStore = audit.NewMemoryActionLogStore()
	}

	if cfg.CacheURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.CacheURL)
		if err != nil {
			utils.Logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		deps.RewardCache = cache.NewRedisCache[[]models.RewardDefinition](redisClient, "battlepass:")
		deps.ShopCache = cache.NewRedisCache[[]models.ShopItem](redisClient, "battlepass:")
		deps.HealthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		deps.RewardCache = cache.NewMemoryCache[[]models.RewardDefinition]()
		deps.ShopCache = cache.NewMemoryCache[[]models.ShopItem]()
	}

	if cfg.MqURL != "" {
		mqClient, err := mq.NewMqClient(cfg.MqURL)
		if err != nil {
			utils.Logger.Fatal("Failed to initialize MQ", zap.Error(err))
		}
		defer mqClient.Close()

		deps.Publisher = audit.NewMqPublisher(mqClient)
	} else {
		deps.Publisher = audit.StorePublisher{Store: deps.ActionLogStore}
	}

	server := api.NewServer(cfg, deps)
	go func() {
		addr := fmt.Sprintf(":%s", cfg.ServerPort)
		if err := server.Start(addr); err != nil {
			utils.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	utils.Logger.Info("Server started successfully", zap.String("port", cfg.ServerPort))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.Logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	utils.Logger.Info("Server exited gracefully")
}
