package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
}

// GlobalRateLimitConfig covers every request, keyed by client IP.
func GlobalRateLimitConfig(limit, windowSeconds int) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     time.Duration(windowSeconds) * time.Second,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open for availability
	}
}

// AuthRateLimitConfig is the strict config for the public auth endpoints.
func AuthRateLimitConfig(limit, windowSeconds int) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     time.Duration(windowSeconds) * time.Second,
		KeyPrefix:  "rl:auth:",
		FailClosed: true, // Credential endpoints reject when the store is down
	}
}

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL seconds.
// Returns: {current_count, ttl_remaining}
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var (
	rateLimitStore sync.Map
	cleanupOnce    sync.Once
)

// startCleanup sweeps expired in-memory entries in the background.
func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			rateLimitStore.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rateLimitStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// RateLimit enforces a fixed-window request limit per client IP, backed by
// Redis with an in-memory fallback when Redis is unavailable.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + c.ClientIP()

		var (
			count      int
			retryAfter time.Duration
		)
		if client := redis.Client(); client != nil {
			var err error
			count, retryAfter, err = tryRedis(c.Request.Context(), client, key, cfg)
			if err != nil {
				// A present-but-broken store is an infrastructure failure;
				// credential endpoints reject rather than degrade.
				if cfg.FailClosed {
					logger.Log.Warn("rate limiter redis eval failed", "error", err)
					response.Error(c, http.StatusServiceUnavailable, "Rate limiter unavailable, please retry")
					c.Abort()
					return
				}
				count, retryAfter = tryMemory(key, cfg)
			}
		} else {
			// Redis was never configured; the in-memory window covers
			// every config, strict ones included.
			count, retryAfter = tryMemory(key, cfg)
		}

		if count > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests, please slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}

// tryRedis runs the atomic INCR+EXPIRE script against the given client.
func tryRedis(ctx context.Context, client *goredis.Client, key string, cfg RateLimitConfig) (count int, retryAfter time.Duration, err error) {
	res, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(cfg.Window.Seconds())).Result()
	if err != nil {
		return 0, 0, err
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return 0, 0, fmt.Errorf("rate limiter: unexpected script result %T", res)
	}
	cnt, _ := vals[0].(int64)
	ttl, _ := vals[1].(int64)
	return int(cnt), time.Duration(ttl) * time.Second, nil
}

func tryMemory(key string, cfg RateLimitConfig) (count int, retryAfter time.Duration) {
	now := time.Now()
	v, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(cfg.Window)})
	entry := v.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(cfg.Window)
	}
	entry.count++
	return entry.count, time.Until(entry.resetAt)
}
