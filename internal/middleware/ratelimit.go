package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"study-planner/pkg/response"
)

// rateLimiter holds one token bucket per key; idle keys expire.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(cfg Config) *rateLimiter {
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = 120
	}
	if cfg.Burst <= 0 {
		cfg.Burst = max(cfg.RequestsPerMin/10, 1)
	}
	if cfg.MaxUsers <= 0 {
		cfg.MaxUsers = 1000
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](cfg.MaxUsers, nil, cfg.TTL),
		rate:     rate.Limit(float64(cfg.RequestsPerMin) / 60.0), // per second
		burst:    cfg.Burst,
	}
}

func (rl *rateLimiter) Allow(key string) bool {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}

// RateLimit throttles requests per caller. Requests without a scope are keyed
// by client IP. Register after Auth.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetScope(c).UserID
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		if !m.limiter.Allow(key) {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: limit exceeded for %s", key)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
