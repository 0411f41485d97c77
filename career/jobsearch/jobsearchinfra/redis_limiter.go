package jobsearchinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
)

// RedisRateLimiter throttles searches per job board with a fixed-window
// counter shared across all instances.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

// Allow consumes one slot for the site and reports whether the window still
// has capacity.
func (l *RedisRateLimiter) Allow(ctx context.Context, source jobsearch.Source) (bool, error) {
	key := fmt.Sprintf("jobsearch:throttle:%s", source)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}

	return count <= l.limit, nil
}
