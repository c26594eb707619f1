package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dosewise/medsafe/internal/directory"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// QueryCache stores search results in Redis with a server-side TTL, keyed by
// case-folded query. Redis errors degrade to cache misses; the lookup itself
// must never fail because the cache is down.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewQueryCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *QueryCache {
	return &QueryCache{client: client, ttl: ttl, log: log}
}

func cacheKey(key string) string {
	return fmt.Sprintf("medsafe:search:%s", key)
}

func (c *QueryCache) Get(ctx context.Context, key string) ([]directory.DrugInfo, bool) {
	raw, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis cache read failed")
		}
		return nil, false
	}

	var results []directory.DrugInfo
	if err := json.Unmarshal(raw, &results); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("corrupt cache entry, treating as miss")
		return nil, false
	}
	return results, true
}

func (c *QueryCache) Set(ctx context.Context, key string, results []directory.DrugInfo) {
	raw, err := json.Marshal(results)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("marshal cache entry failed")
		return
	}
	if err := c.client.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis cache write failed")
	}
}
