package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRepository keeps fixed-window request counters in Redis.
type RateLimitRepository struct {
	rdb *redis.Client
}

// NewRateLimitRepository creates a new RateLimitRepository.
func NewRateLimitRepository(rdb *redis.Client) *RateLimitRepository {
	return &RateLimitRepository{rdb: rdb}
}

// Incr bumps the counter at key and returns the new value. The key expires
// after window so stale windows clean themselves up.
func (r *RateLimitRepository) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
