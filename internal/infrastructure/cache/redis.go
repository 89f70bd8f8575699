package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"drivn/internal/domain/entity"
	"drivn/pkg/logger"
)

const summaryTTL = time.Minute

// Cache is an optional Redis-backed cache for explore-feed vehicle summaries
// and the plate-search corpus. A nil *Cache is a valid no-op cache, so
// callers never need to branch on whether Redis is configured.
type Cache struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string) *Cache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not reachable at %s, cache disabled: %v", addr, err)
		return nil
	}

	return &Cache{client: client}
}

func (c *Cache) GetVehicleSummaries(ctx context.Context, key string) ([]*entity.VehicleSummary, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache read failed for %s: %v", key, err)
		}
		return nil, false
	}

	var summaries []*entity.VehicleSummary
	if err := json.Unmarshal(payload, &summaries); err != nil {
		logger.Warn("Cache payload corrupt for %s: %v", key, err)
		return nil, false
	}
	return summaries, true
}

func (c *Cache) SetVehicleSummaries(ctx context.Context, key string, summaries []*entity.VehicleSummary) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, summaryTTL).Err(); err != nil {
		logger.Warn("Cache write failed for %s: %v", key, err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
