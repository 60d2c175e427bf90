package models

import "time"

type Config struct {
	DatabaseURL     string
	DatabaseName    string
	MigrationsPath  string
	MqURL           string
	CacheURL        string
	ElasticUrl      string
	JWTSecret       string
	AdminToken      string
	ServiceName     string
	ServerPort      string
	CatalogCacheTTL time.Duration
	PaymentDelay    time.Duration
	ProgressConfig  ProgressConfig
	RateLimitConfig RateLimitConfig
}

type ProgressConfig struct {
	AutoLevelUp bool
	XPPerLevel  int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}
