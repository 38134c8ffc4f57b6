// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"studyabroad-workers/internal/models"
)

const cacheKey = "catalog:universities"

// Cached is a read-through Redis cache in front of another source. Redis
// errors fall through to the wrapped source.
type Cached struct {
	next  Source
	redis *redis.Client
	ttl   time.Duration
}

func NewCached(next Source, rdb *redis.Client, ttl time.Duration) *Cached {
	return &Cached{next: next, redis: rdb, ttl: ttl}
}

func (c *Cached) List(ctx context.Context) ([]models.University, error) {
	if val, err := c.redis.Get(ctx, cacheKey).Result(); err == nil {
		var unis []models.University
		if err := json.Unmarshal([]byte(val), &unis); err == nil {
			return unis, nil
		}
	}

	unis, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(unis); err == nil {
		c.redis.Set(ctx, cacheKey, data, c.ttl)
	}
	return unis, nil
}

// Invalidate drops the cached copy.
func (c *Cached) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, cacheKey).Err()
}
