package app

import (
	"context"
	"database/sql"
	"fmt"

	"study-planner/config"
	"study-planner/internal/availability"
	"study-planner/internal/httpserver"
	"study-planner/internal/metrics"
	"study-planner/internal/planner"
	plannerRepo "study-planner/internal/planner/repository/postgre"
	"study-planner/internal/planner/usecase"
	"study-planner/pkg/eventbus"
	"study-planner/pkg/gcalendar"
	"study-planner/pkg/locker"
	"study-planner/pkg/log"
	"study-planner/pkg/postgres"
)

// App holds the infrastructure and the planner use case shared by every binary.
//
// Required: PostgreSQL. Optional: Redis (falls back to an in-process pass lock),
// NATS (events are dropped), Google Calendar (the whole range is treated as free).
type App struct {
	DB      *sql.DB
	Metrics *metrics.Metrics
	Bus     *eventbus.NatsBus // nil when NATS is not configured
	UseCase planner.UseCase

	Checkers map[string]httpserver.Checker

	l       log.Logger
	closers []func()
}

// Init connects the infrastructure described by cfg and builds the use case.
func Init(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	a := &App{
		Metrics:  metrics.NewMetrics(),
		Checkers: map[string]httpserver.Checker{},
		l:        l,
	}

	engineCfg, err := cfg.EngineConfigs()
	if err != nil {
		return nil, fmt.Errorf("invalid planner config: %w", err)
	}

	// 1. PostgreSQL
	a.DB, err = postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = a.DB.Close() })
	a.Checkers["postgres"] = a.DB.PingContext
	l.Info(ctx, "PostgreSQL connected")

	repo := plannerRepo.New(a.DB, l,
		plannerRepo.WithMetrics(a.Metrics),
		plannerRepo.WithRetry(cfg.Postgres.RetryAttempts, cfg.Postgres.RetryBaseDelay, cfg.Postgres.RetryMaxDelay),
	)

	// 2. Redis pass lock (optional)
	var lk locker.Locker
	if cfg.Redis.Addr != "" {
		redisLocker, rErr := locker.NewRedisLocker(ctx, locker.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if rErr != nil {
			a.Close()
			return nil, rErr
		}
		a.closers = append(a.closers, func() { _ = redisLocker.Close() })
		a.Checkers["redis"] = redisLocker.Ping
		lk = redisLocker
		l.Info(ctx, "Redis pass lock enabled")
	} else {
		l.Warn(ctx, "redis.addr not set, pass lock is process-local")
	}

	// 3. NATS events (optional)
	var publisher eventbus.Publisher
	if cfg.NATS.URL != "" {
		bus, nErr := eventbus.NewNatsBus(l, eventbus.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			Timeout:        cfg.NATS.Timeout,
			ConsumerPrefix: cfg.NATS.ConsumerPrefix,
			MaxAge:         cfg.NATS.MaxAge,
		})
		if nErr != nil {
			a.Close()
			return nil, nErr
		}
		a.closers = append(a.closers, func() { _ = bus.Close() })
		a.Checkers["nats"] = func(context.Context) error { return bus.Health() }
		a.Bus = bus
		publisher = bus
	} else {
		l.Warn(ctx, "nats.url not set, planner events are not published")
	}

	// 4. Availability
	var avail availability.Provider = availability.Static{}
	if cfg.GoogleCalendar.CredentialsPath != "" {
		client, gErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if gErr != nil {
			l.Warnf(ctx, "Google Calendar not available (optional): %v", gErr)
		} else {
			avail = availability.NewCalendar(client, availability.CalendarConfig{
				CalendarIDs: cfg.GoogleCalendar.CalendarIDs,
				Timezone:    cfg.Planner.Timezone,
				CacheSize:   cfg.GoogleCalendar.CacheSize,
				CacheTTL:    cfg.GoogleCalendar.CacheTTL,
			}, l, a.Metrics)
			l.Info(ctx, "Google Calendar availability enabled")
		}
	}

	// 5. UseCase
	a.UseCase = usecase.New(l, repo, avail, lk, publisher, a.Metrics, engineCfg)
	return a, nil
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
