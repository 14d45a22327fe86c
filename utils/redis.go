package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yururi-apps/schedule-coordination-backend/config"
)

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis connects the shared client; reset tokens and the refresh-token
// denylist live here.
func InitRedis(cfg *config.Config) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(redisCtx, 3*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	log.Println("✅ Redis connected")
	return nil
}

func SetToken(key, value string, ttl time.Duration) error {
	return redisClient.Set(redisCtx, key, value, ttl).Err()
}

// GetToken returns redis.Nil wrapped error when the key is absent
func GetToken(key string) (string, error) {
	return redisClient.Get(redisCtx, key).Result()
}

func DeleteToken(key string) error {
	return redisClient.Del(redisCtx, key).Err()
}
