package postgre

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"study-planner/internal/metrics"
	"study-planner/internal/planner/repository"
	"study-planner/pkg/log"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type implRepository struct {
	db    *sql.DB
	l     log.Logger
	m     *metrics.Metrics
	retry retryPolicy
	now   func() time.Time
}

// Option customizes the repository.
type Option func(*implRepository)

// WithMetrics records retried operations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *implRepository) { r.m = m }
}

// WithRetry overrides the upsert retry policy.
func WithRetry(attempts int, base, maxDelay time.Duration) Option {
	return func(r *implRepository) {
		r.retry = retryPolicy{attempts: attempts, base: base, max: maxDelay}
	}
}

// New creates a new PostgreSQL-backed Repository for the planner domain.
func New(db *sql.DB, l log.Logger, opts ...Option) repository.Repository {
	if db == nil {
		panic("planner/repository/postgre: db is required")
	}
	r := &implRepository{db: db, l: l, retry: defaultRetryPolicy, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("planner/repository/postgre.%s", method)
}
