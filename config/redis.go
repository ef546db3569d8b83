package config

import (
	"context"
	"time"

	"github.com/HSouheill/lostfound_backend/logger"
	"github.com/go-redis/redis/v8"
)

// ConnectRedis establishes connection to Redis. It returns nil when no
// address is configured or the server is unreachable; callers then fall back
// to running without verification attempt limiting.
func ConnectRedis(ctx context.Context, cfg *Config, log logger.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("Redis not configured, verification attempt limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Warn("Redis connection failed, verification attempt limiting disabled", "error", err)
		_ = client.Close()
		return nil
	}

	log.Info("Connected to Redis", "addr", cfg.RedisAddr)
	return client
}
