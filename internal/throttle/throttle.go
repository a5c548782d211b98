package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle caps how often a keyed action may happen inside a rolling window.
// A nil *redis.Client disables it, so deployments without Redis keep working.
type Throttle struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func New(rdb *redis.Client, limit int, window time.Duration) *Throttle {
	return &Throttle{rdb: rdb, limit: limit, window: window}
}

// Allow increments the counter for key and reports whether the action is
// still inside the limit. The counter expires with the window, so the
// throttle needs no cleanup pass.
func (t *Throttle) Allow(ctx context.Context, key string) (bool, error) {
	if t == nil || t.rdb == nil {
		return true, nil
	}

	redisKey := fmt.Sprintf("throttle:%s", key)
	count, err := t.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if count == 1 {
		if err := t.rdb.Expire(ctx, redisKey, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return count <= int64(t.limit), nil
}
