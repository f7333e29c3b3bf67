package comments

import (
	"context"
	"time"

	"moderation-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter bounds submissions per site+ip-hash with a fixed window.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return utils.AllowRate(ctx, l.rdb, "comments:rate:"+key, l.limit, l.window)
}
