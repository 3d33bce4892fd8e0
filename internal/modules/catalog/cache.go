// README: Effective-catalog cache backed by Redis.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "catalog:effective"
	// Catalog edits are rare; a short TTL bounds staleness across instances.
	cacheTTL = 10 * time.Minute
)

type Cache struct {
	redis *redis.Client
}

func NewCache(redis *redis.Client) *Cache {
	return &Cache{redis: redis}
}

type cachedBundle struct {
	Bundle Bundle `json:"bundle"`
	Source Source `json:"source"`
}

// Get returns the cached bundle and its source, or nil on a miss.
func (c *Cache) Get(ctx context.Context) (*Bundle, Source, error) {
	raw, err := c.redis.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	var entry cachedBundle
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Treat a corrupt entry as a miss; it will be rewritten.
		return nil, "", nil
	}
	return &entry.Bundle, entry.Source, nil
}

func (c *Cache) Set(ctx context.Context, b Bundle, source Source) error {
	raw, err := json.Marshal(cachedBundle{Bundle: b, Source: source})
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, cacheKey, raw, cacheTTL).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, cacheKey).Err()
}
