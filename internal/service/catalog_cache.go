package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const catalogCachePrefix = "catalog:available:"

// catalogCache is a best-effort read-through cache for the available-product
// listing. A nil cache or nil client turns every call into a no-op, and
// redis failures never fail the request.
type catalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newCatalogCache(rdb *redis.Client, ttl time.Duration) *catalogCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &catalogCache{rdb: rdb, ttl: ttl}
}

func (c *catalogCache) get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	cached, err := c.rdb.Get(ctx, catalogCachePrefix+key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(cached, dest) == nil
}

func (c *catalogCache) set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogCachePrefix+key, b, c.ttl).Err(); err != nil {
		log.Debug().Err(err).Msg("catalog cache: set failed")
	}
}

// invalidate drops every cached listing.
func (c *catalogCache) invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, catalogCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("catalog cache: scan failed")
		return
	}
	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Msg("catalog cache: delete failed")
		}
	}
}
