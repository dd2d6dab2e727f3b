// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Counter counts hits per key inside a fixed window
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter keeps windows in Redis so every instance shares them
type RedisCounter struct {
	client redis.Cmdable
}

// NewRedisCounter creates a Redis-backed counter
func NewRedisCounter(client redis.Cmdable) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr bumps key and starts its window on the first hit
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// MemoryCounter is the single-process Counter
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*counterWindow
	now     func() time.Time
}

type counterWindow struct {
	count int64
	reset time.Time
}

// NewMemoryCounter creates an in-process counter
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{windows: make(map[string]*counterWindow), now: time.Now}
}

// Incr bumps key, starting a new window once the old one has passed
func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &counterWindow{reset: now.Add(window)}
		m.windows[key] = w
	}
	w.count++

	if len(m.windows) > 10000 {
		for k, old := range m.windows {
			if !now.Before(old.reset) {
				delete(m.windows, k)
			}
		}
	}
	return w.count, nil
}

// RateLimit allows limit POSTs per minute and client IP on the routes it
// wraps. Counter failures let the request through.
func RateLimit(counter Counter, scope string, limit int, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		key := fmt.Sprintf("rate_limit:%s:%s", scope, c.ClientIP())
		current, err := counter.Incr(ctx, key, time.Minute)
		if err != nil {
			logger.WithError(err).Warn("rate limit counter unavailable")
			c.Next()
			return
		}

		remaining := int64(limit) - current
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if current > int64(limit) {
			logger.WithFields(logrus.Fields{"client_ip": c.ClientIP(), "scope": scope}).Warn("rate limit exceeded")
			c.Header("Retry-After", "60")
			if IsXHR(c) {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"status":  "error",
					"message": translate(c, "too_many_attempts"),
				})
				return
			}
			Flash(c, "danger", "too_many_attempts")
			c.Redirect(http.StatusSeeOther, c.Request.URL.RequestURI())
			c.Abort()
			return
		}

		c.Next()
	}
}
