package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/response"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
	"github.com/zordhalo/lontario-YC-sub000/pkg/security"
)

// RateLimitTier is a named limit applied to a group of routes.
type RateLimitTier struct {
	Name   string
	Limit  int
	Window time.Duration
}

// GlobalTier covers every /v1 route; AITier is stacked on routes that call the model.
func GlobalTier(limit int, window time.Duration) RateLimitTier {
	return RateLimitTier{Name: "global", Limit: limit, Window: window}
}

func AITier(limit int, window time.Duration) RateLimitTier {
	return RateLimitTier{Name: "ai", Limit: limit, Window: window}
}

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per caller in Redis when a client is
// configured, and in process memory otherwise or when Redis errors.
type RateLimiter struct {
	redis  *goredis.Client
	secLog *security.SecurityLogger
	store  sync.Map
	now    func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter accepts a nil client.
func NewRateLimiter(client *goredis.Client, secLog *security.SecurityLogger) *RateLimiter {
	rl := &RateLimiter{
		redis:  client,
		secLog: secLog,
		now:    time.Now,
		done:   make(chan struct{}),
	}
	go rl.cleanupLoop(5 * time.Minute)
	return rl
}

// Stop ends the in-memory cleanup loop.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			now := rl.now()
			rl.store.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rl.store.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}
}

// Middleware enforces tier. Authenticated callers are keyed by user id,
// anonymous ones by client IP.
func (rl *RateLimiter) Middleware(tier RateLimitTier) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rl:%s:%s", tier.Name, callerKey(c))

		count, resetAt, err := rl.hit(c.Request.Context(), key, tier)
		if err != nil {
			logger.Log.Warn("Redis rate limit failed, using in-memory counter", "error", err)
			count, resetAt = rl.hitInMemory(key, tier)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(tier.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > tier.Limit {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			rl.secLog.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"),
				c.GetString(string(domain.KeyRequestID)), c.FullPath(), tier.Name)

			response.ErrorKind(c, http.StatusTooManyRequests, "rate_limit", "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(tier.Limit-count))
		c.Next()
	}
}

func callerKey(c *gin.Context) string {
	if uid := c.GetString(string(domain.KeyUserID)); uid != "" {
		return "user:" + uid
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) hit(ctx context.Context, key string, tier RateLimitTier) (int, time.Time, error) {
	if rl.redis == nil {
		count, resetAt := rl.hitInMemory(key, tier)
		return count, resetAt, nil
	}

	result, err := rateLimitScript.Run(ctx, rl.redis, []string{key}, int(tier.Window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	return int(count), rl.now().Add(time.Duration(ttl) * time.Second), nil
}

func (rl *RateLimiter) hitInMemory(key string, tier RateLimitTier) (int, time.Time) {
	now := rl.now()
	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(tier.Window)})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(tier.Window)
	}
	entry.count++
	return entry.count, entry.resetAt
}
