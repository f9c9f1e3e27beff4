package authinfra

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/go-redis/redis/v8"
)

// RedisTokenDenylist keeps one key per revoked jti, expiring with the token
type RedisTokenDenylist struct {
	client *redis.Client
	prefix string
}

var _ auth.TokenDenylist = (*RedisTokenDenylist)(nil)

func NewRedisTokenDenylist(client *redis.Client, prefix string) *RedisTokenDenylist {
	if prefix == "" {
		prefix = "hiresight:revoked:"
	}
	return &RedisTokenDenylist{client: client, prefix: prefix}
}

func (d *RedisTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.prefix+tokenID, 1, ttl).Err()
}

func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
