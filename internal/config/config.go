package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultMigrationsPath  = "file://migrations"
	defaultCatalogCacheTTL = 5 * time.Minute
	defaultXPPerLevel      = 1000
	defaultRateLimitRPS    = 100
	defaultRateLimitBurst  = 200
)

// LoadEnvironment reads .env when present, then the process environment
func LoadEnvironment() *models.Config {
	_ = godotenv.Load()

	return &models.Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DatabaseName:    os.Getenv("DATABASE_NAME"),
		MigrationsPath:  getString("MIGRATIONS_PATH", defaultMigrationsPath),
		MqURL:           os.Getenv("MQ_URL"),
		CacheURL:        os.Getenv("CACHE_URL"),
		ElasticUrl:      os.Getenv("ELASTIC_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		ServiceName:     getString("SERVICE_NAME", "battlepass"),
		ServerPort:      getString("PORT", defaultPort),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		PaymentDelay:    getDuration("PAYMENT_CONFIRM_DELAY", 0),
		ProgressConfig: models.ProgressConfig{
			AutoLevelUp: getBool("AUTO_LEVEL_UP", false),
			XPPerLevel:  getInt("XP_PER_LEVEL", defaultXPPerLevel),
		},
		RateLimitConfig: models.RateLimitConfig{
			RPS:   getFloat("RATE_LIMIT_RPS", defaultRateLimitRPS),
			Burst: getInt("RATE_LIMIT_BURST", defaultRateLimitBurst),
		},
	}
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
