package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/config"
	"b2bees-backend/internal/shared/utils"
)

// Config holds all configuration for the worker
type Config struct {
	RedisOpt    asynq.RedisClientOpt
	Concurrency int
	HealthPort  string
}

// loadConfig lấy Redis từ app config, phần riêng của worker đọc từ env
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		RedisOpt: asynq.RedisClientOpt{
			Addr:     appCfg.Redis.Host,
			Password: appCfg.Redis.Password,
			DB:       appCfg.Redis.DB,
		},
		Concurrency: utils.GetEnvInt("WORKER_CONCURRENCY", 10),
		HealthPort:  utils.GetEnvVariable("WORKER_HEALTH_PORT", "9999"),
	}

	log.Info().
		Str("redis", cfg.RedisOpt.Addr).
		Int("concurrency", cfg.Concurrency).
		Msg("[Config] Worker configuration loaded")

	return cfg
}
