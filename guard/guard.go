package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lunchvote:claim:"

// RedisGuard hands out per-key claims with SETNX. A nil guard, or one
// without a client, grants every claim.
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 26 * time.Hour
	}
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

// Claim reports true when this caller now holds key.
func (g *RedisGuard) Claim(ctx context.Context, key string) (bool, error) {
	if g == nil || g.rdb == nil || key == "" {
		return true, nil
	}
	ok, err := g.rdb.SetNX(ctx, keyPrefix+key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("guard setnx: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if g == nil || g.rdb == nil || key == "" {
		return nil
	}
	if err := g.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("guard del: %w", err)
	}
	return nil
}
