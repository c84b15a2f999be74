package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
)

// Counter counts hits on key within a fixed window. It returns the count so
// far and the time left in the window.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left < 0 {
		// New key, or one that lost its expiry.
		if err := r.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		left = window
	}
	return incr.Val(), left, nil
}

// RateLimit allows limit requests per client IP per window. A nil counter
// disables limiting; counter errors let the request through.
func RateLimit(counter Counter, name string, limit int, window time.Duration) gin.HandlerFunc {
	if counter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "ratelimit:" + name + ":" + c.ClientIP()

		n, left, err := counter.Hit(ctx, key, window)
		if err != nil {
			slog.WarnContext(ctx, "rate limit unavailable", "limit", name, "error", err)
			c.Next()
			return
		}

		if n > int64(limit) {
			secs := int(left.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.TooManyRequests(c, "rate_limited", "too many attempts, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
