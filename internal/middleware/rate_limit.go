package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter is a fixed-window limiter per client IP. With a redis client
// the window is shared by every instance; without one it is kept in memory.
// Redis failures let the request through.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
	logger *slog.Logger

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

type visitor struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string, logger *slog.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "rl"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{
		rdb:      rdb,
		limit:    limit,
		window:   window,
		prefix:   prefix,
		logger:   logger,
		visitors: map[string]*visitor{},
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.prefix + ":" + c.ClientIP()

		allowed, err := rl.allow(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn("redis rate limiter error", "err", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	if rl.rdb == nil {
		return rl.allowLocal(key, time.Now()), nil
	}

	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return false, err
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unexpected redis script result type %T", res)
	}

	return count <= int64(rl.limit), nil
}

func (rl *RateLimiter) allowLocal(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	v := rl.visitors[key]
	if v == nil || now.After(v.resetAt) {
		rl.visitors[key] = &visitor{count: 1, resetAt: now.Add(rl.window)}
		return true
	}
	if v.count >= rl.limit {
		return false
	}
	v.count++
	return true
}

// sweep drops expired visitors, at most once per window. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for key, v := range rl.visitors {
		if now.After(v.resetAt) {
			delete(rl.visitors, key)
		}
	}
	rl.lastSweep = now
}
