package middleware

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"inkwell/internal/comments"
	"inkwell/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Counter increments a fixed-window counter and returns the new count.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		r.client.Expire(ctx, key, window)
	}
	return count, nil
}

const RelayHeader = comments.RelayHeader

// RateLimit allows limit requests per client IP and route in each window and
// answers the rest with a 429 JSON body. When the counter is unavailable the
// request is let through and the failure logged.
func RateLimit(counter Counter, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return RateLimitWith(counter, limit, window, log, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many comments, try again later"})
	})
}

// RateLimitWith is RateLimit with a custom response for rejected requests.
// reject must abort the context.
func RateLimitWith(counter Counter, limit int, window time.Duration, log *logger.Logger, reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := fmt.Sprintf("rate_limit:%s:%s", route, c.ClientIP())

		count, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.Warn("rate limit check failed: %v", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			reject(c)
			return
		}

		c.Next()
	}
}

// SkipRelayed runs limit only for requests that do not carry the relay token.
// Relayed requests were already limited on the route that received them.
func SkipRelayed(token string, limit gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(RelayHeader)
		if token != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1 {
			c.Next()
			return
		}
		limit(c)
	}
}
