package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	"github.com/ahmetkoprulu/battlepass/common/data"
	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/config"
	"github.com/ahmetkoprulu/battlepass/internal/consumers"
	"github.com/ahmetkoprulu/battlepass/internal/mq"
	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/ledger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadEnvironment()

	if cfg.ElasticUrl != "" {
		utils.InitElasticLogger(cfg.ElasticUrl, cfg.ServiceName+"-consumers")
	} else {
		utils.InitLogger(cfg.ServiceName + "-consumers")
	}
	defer utils.Logger.Sync()

	if cfg.DatabaseURL == "" || cfg.MqURL == "" {
		utils.Logger.Fatal("DATABASE_URL and MQ_URL are required")
	}

	ctx := context.Background()

	// the api owns the schema
	db, err := data.LoadPostgres(ctx, cfg.DatabaseURL, cfg.DatabaseName, "")
	if err != nil {
		utils.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	mqClient, err := mq.NewMqClient(cfg.MqURL)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize MQ", zap.Error(err))
	}

	var processed cache.Cache[bool]
	if cfg.CacheURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.CacheURL)
		if err != nil {
			utils.Logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		processed = cache.NewRedisCache[bool](redisClient, "battlepass:grants:")
	} else {
		processed = cache.NewMemoryCache[bool]()
	}

	actionLogStore := audit.NewPgActionLogStore(db)
	points := services.NewPointsService(ledger.NewPgLedgerStore(db), audit.NewMqPublisher(mqClient))

	consumerManager := consumers.NewConsumerManager(mqClient, map[string]consumers.IConsumer{
		"points-grant": consumers.NewPointsGrantConsumer(mqClient, points, processed),
		"action-log":   consumers.NewActionLogConsumer(mqClient, actionLogStore),
	})

	if err := consumerManager.Start(); err != nil {
		consumerManager.Shutdown()
		utils.Logger.Fatal("Failed to start consumers", zap.Error(err))
	}
	utils.Logger.Info("Consumers started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	utils.Logger.Info("Shutting down consumer service...")
	consumerManager.Shutdown()
}
