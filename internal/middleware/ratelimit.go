package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"movie-catalog-service/internal/config"
)

const (
	sweepInterval = time.Minute
	clientIdle    = 3 * time.Minute
)

// RateLimiter caps requests per client IP in fixed windows counted in
// Redis. Without Redis, or when a Redis call fails, it falls back to an
// in-process token bucket per IP with the same average rate.
type RateLimiter struct {
	rdb     *redis.Client
	maxReqs int
	window  time.Duration
	now     func() time.Time

	mu    sync.Mutex
	local map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter. rdb may be nil.
func NewRateLimiter(rdb *redis.Client, cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		rdb:     rdb,
		maxReqs: cfg.Max,
		window:  cfg.Window,
		now:     time.Now,
		local:   make(map[string]*client),
	}
}

// Run evicts idle local buckets every minute until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops buckets of clients not seen for clientIdle.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, c := range rl.local {
		if now.Sub(c.lastSeen) > clientIdle {
			delete(rl.local, ip)
		}
	}
}

// Handler returns a Fiber middleware handler for rate limiting.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		ip := c.IP()

		if rl.rdb != nil {
			remaining, reset, err := rl.countRedis(c.Context(), ip)
			if err == nil {
				c.Set("X-RateLimit-Limit", strconv.Itoa(rl.maxReqs))
				c.Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, remaining), 10))
				c.Set("X-RateLimit-Reset", strconv.Itoa(int(reset.Seconds())))
				if remaining < 0 {
					return tooManyRequests(c, reset)
				}
				return c.Next()
			}
			slog.Warn("rate limiter falling back to local bucket", "error", err)
		}

		if !rl.localLimiter(ip).Allow() {
			return tooManyRequests(c, rl.window/time.Duration(max(1, rl.maxReqs)))
		}
		return c.Next()
	}
}

// countRedis increments the IP's counter for the current window and returns
// how many requests remain (negative once over the limit) and the time until
// the window resets.
func (rl *RateLimiter) countRedis(ctx context.Context, ip string) (int64, time.Duration, error) {
	key := fmt.Sprintf("ratelimit:%s", ip)

	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
			return 0, 0, err
		}
	}

	ttl, err := rl.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	return int64(rl.maxReqs) - count, max(0, ttl), nil
}

func (rl *RateLimiter) localLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.local[ip]
	if !ok {
		every := rl.window / time.Duration(max(1, rl.maxReqs))
		c = &client{limiter: rate.NewLimiter(rate.Every(every), rl.maxReqs)}
		rl.local[ip] = c
	}
	c.lastSeen = rl.now()
	return c.limiter
}

func tooManyRequests(c fiber.Ctx, retryAfter time.Duration) error {
	secs := int(retryAfter.Seconds())
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error":       "rate limit exceeded",
		"retry_after": secs,
	})
}
