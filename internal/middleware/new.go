package middleware

import (
	"time"

	"study-planner/internal/metrics"
	"study-planner/pkg/log"
)

// Config holds the per-user rate limit.
type Config struct {
	RequestsPerMin int
	Burst          int
	MaxUsers       int
	TTL            time.Duration
}

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
	metrics *metrics.Metrics
}

func New(l log.Logger, m *metrics.Metrics, cfg Config) Middleware {
	return Middleware{
		l:       l,
		limiter: newRateLimiter(cfg),
		metrics: m,
	}
}
