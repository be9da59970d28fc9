package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestShortLinkCacheRoundTrip(t *testing.T) {
	mr, client := testClient(t)
	c := NewShortLinkCache(client, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "abc123")
	assert.False(t, ok)

	c.Set(ctx, "abc123", 42)
	id, ok := c.Get(ctx, "abc123")
	require.True(t, ok)
	assert.Equal(t, uint(42), id)

	c.Invalidate(ctx, "abc123")
	_, ok = c.Get(ctx, "abc123")
	assert.False(t, ok)

	// entries expire with the configured ttl
	c.Set(ctx, "abc123", 42)
	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, "abc123")
	assert.False(t, ok)
}

func TestShortLinkCacheWithoutRedis(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*ShortLinkCache{nil, NewShortLinkCache(nil, time.Minute)} {
		c.Set(ctx, "abc123", 42)
		_, ok := c.Get(ctx, "abc123")
		assert.False(t, ok)
		c.Invalidate(ctx, "abc123")
	}
}

func TestTokenDenylist(t *testing.T) {
	mr, client := testClient(t)
	d := NewTokenDenylist(client)
	ctx := context.Background()

	assert.False(t, d.IsDenied(ctx, "jti-1"))

	require.NoError(t, d.Deny(ctx, "jti-1", time.Now().Add(time.Hour)))
	assert.True(t, d.IsDenied(ctx, "jti-1"))
	assert.False(t, d.IsDenied(ctx, "jti-2"))

	// denial lapses together with the token lifetime
	mr.FastForward(2 * time.Hour)
	assert.False(t, d.IsDenied(ctx, "jti-1"))

	// already-expired tokens need no entry at all
	require.NoError(t, d.Deny(ctx, "jti-3", time.Now().Add(-time.Minute)))
	assert.False(t, d.IsDenied(ctx, "jti-3"))
}

func TestTokenDenylistWithoutRedis(t *testing.T) {
	ctx := context.Background()
	var d *TokenDenylist
	assert.NoError(t, d.Deny(ctx, "jti-1", time.Now().Add(time.Hour)))
	assert.False(t, d.IsDenied(ctx, "jti-1"))
}
