package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lokamart-be/internal/logger"
	"lokamart-be/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a thin read-side JSON cache over redis. A nil *Cache is valid
// and disables caching entirely, so callers never branch on configuration.
type Cache struct {
	client *redis.Client
	stats  *metrics.Stats
}

func New(addr, password string, stats *metrics.Stats) *Cache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: client, stats: stats}
}

// GetJSON loads key into dest. The bool reports whether the key was found;
// redis being unreachable is reported as a miss, not an error, because the
// store remains the source of truth.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		if c.stats != nil {
			c.stats.CacheMisses.Inc()
		}
		return false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Warn("cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
		if c.stats != nil {
			c.stats.CacheMisses.Inc()
		}
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}

	if c.stats != nil {
		c.stats.CacheHits.Inc()
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
