package cache

import (
	"context"
	"encoding/json"
	"time"

	"movie-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a thin redis wrapper used for stale-tolerant read views.
// A nil *Cache is valid and behaves as a cache that never hits, so
// callers do not need to guard on whether redis is configured.
type Cache struct {
	rdb *redis.Client
	log *zap.Logger
}

// New connects to redis. Returns nil (caching disabled) when no address
// is configured.
func New(config utils.RedisConfig, log *zap.Logger) (*Cache, error) {
	if config.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{
		rdb: rdb,
		log: log.With(zap.String("component", "cache")),
	}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// GetJSON loads key into out. The bool reports whether the key was found.
// Errors are logged and reported as misses; the cache is best-effort.
func (c *Cache) GetJSON(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.log.Warn("Cache entry corrupt", zap.Error(err), zap.String("key", key))
		return false
	}

	return true
}

// SetJSON stores val under key with the given TTL, best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(val)
	if err != nil {
		c.log.Warn("Cache marshal failed", zap.Error(err), zap.String("key", key))
		return
	}

	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// Del drops keys, best-effort. Used to invalidate the booked-seats view
// right after a commit so readers converge faster.
func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache delete failed", zap.Error(err), zap.Strings("keys", keys))
	}
}
