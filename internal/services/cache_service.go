package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache is the subset of the Redis client used by the services. The
// abstraction keeps the services testable without a live Redis.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ConnectRedis initializes a Redis client from environment configuration
// and verifies connectivity with a ping.
func ConnectRedis() (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s",
		config.GetEnv("REDIS_HOST", "localhost"),
		config.GetEnv("REDIS_PORT", "6379"),
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logrus.WithField("address", addr).Info("Redis connection established")
	return rdb, nil
}

// cacheGet unmarshals a cached JSON value into dest. Returns false on miss
// or decode failure; a stale or corrupt entry is treated as a miss.
func cacheGet(ctx context.Context, cache Cache, key string, dest interface{}) bool {
	if cache == nil {
		return false
	}
	raw, err := cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logrus.Warnf("Discarding undecodable cache entry %s: %v", key, err)
		return false
	}
	return true
}

// cacheSet stores a JSON-encoded value; failures are logged and ignored
func cacheSet(ctx context.Context, cache Cache, key string, value interface{}, ttl time.Duration) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	cache.Set(ctx, key, data, ttl)
}

// cacheDel removes keys; a nil cache is a no-op
func cacheDel(ctx context.Context, cache Cache, keys ...string) {
	if cache == nil {
		return
	}
	cache.Del(ctx, keys...)
}
