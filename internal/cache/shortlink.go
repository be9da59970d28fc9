// Package cache holds the redis-backed read caches. Redis is optional at
// runtime; every cache degrades to a no-op when the client is nil.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ShortLinkCache maps short-link hashes to recipe ids, saving the DB lookup
// on the redirect hot path.
type ShortLinkCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewShortLinkCache(client *redis.Client, ttl time.Duration) *ShortLinkCache {
	return &ShortLinkCache{client: client, ttl: ttl}
}

func key(hash string) string { return "shortlink:" + hash }

// Get returns the cached recipe id for hash, or ok=false on miss.
func (c *ShortLinkCache) Get(ctx context.Context, hash string) (uint, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, key(hash)).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (c *ShortLinkCache) Set(ctx context.Context, hash string, recipeID uint) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key(hash), strconv.FormatUint(uint64(recipeID), 10), c.ttl).Err()
}

// Invalidate drops the mapping, used when a recipe is deleted.
func (c *ShortLinkCache) Invalidate(ctx context.Context, hash string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key(hash)).Err()
}
