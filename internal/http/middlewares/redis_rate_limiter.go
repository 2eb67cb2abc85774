package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
)

// RedisCounter is a fixed-window counter shared by every instance that talks
// to the same Redis. Keys look like <prefix>:<window seconds>:<client>.
type RedisCounter struct {
	client rueidis.Client
	prefix string
}

func NewRedisCounter(client rueidis.Client, prefix string) *RedisCounter {
	return &RedisCounter{
		client: client,
		prefix: prefix,
	}
}

// Hit increments the key and reads its TTL in one round trip. A key without
// an expiry gets one, which also repairs a key whose earlier EXPIRE failed.
func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := r.prefix + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + key

	results := r.client.DoMulti(ctx,
		r.client.B().Incr().Key(fullKey).Build(),
		r.client.B().Ttl().Key(fullKey).Build(),
	)

	count, err := results[0].AsInt64()
	if err != nil {
		return 0, err
	}
	ttl, err := results[1].AsInt64()
	if err != nil {
		return 0, err
	}

	if ttl < 0 {
		expire := r.client.B().Expire().Key(fullKey).Seconds(windowSeconds(window)).Build()
		if err := r.client.Do(ctx, expire).Error(); err != nil {
			return 0, err
		}
	}

	return count, nil
}

func windowSeconds(window time.Duration) int64 {
	if s := int64(window.Seconds()); s > 0 {
		return s
	}
	return 1
}

func RedisRateLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) echo.MiddlewareFunc {
	return LimitBy(NewRedisCounter(client, prefix), limit, window)
}
