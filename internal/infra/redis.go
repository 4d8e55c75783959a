package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

const denylistPrefix = "denylist:"

// TokenDenylist stores revoked access tokens in Redis. Keys carry the token's
// remaining lifetime as TTL, so the set never grows beyond live tokens.
type TokenDenylist struct {
	rdb *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

func (d *TokenDenylist) Deny(ctx context.Context, token string, ttl time.Duration) error {
	return d.rdb.Set(ctx, denylistPrefix+token, "1", ttl).Err()
}

func (d *TokenDenylist) IsDenied(ctx context.Context, token string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
