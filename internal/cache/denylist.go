package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records logged-out JWTs until their natural expiry.
// Without redis, logout degrades to a client-side discard.
type TokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

func denyKey(jti string) string { return "token:deny:" + jti }

// Deny blocks the token id for the remaining lifetime of the token.
func (d *TokenDenylist) Deny(ctx context.Context, jti string, until time.Time) error {
	if d == nil || d.client == nil {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denyKey(jti), "1", ttl).Err()
}

func (d *TokenDenylist) IsDenied(ctx context.Context, jti string) bool {
	if d == nil || d.client == nil {
		return false
	}
	n, err := d.client.Exists(ctx, denyKey(jti)).Result()
	return err == nil && n > 0
}
