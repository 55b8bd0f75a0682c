package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"study-planner/internal/metrics"
	"study-planner/internal/middleware"
	"study-planner/internal/planner"
	"study-planner/pkg/log"
)

// Checker reports whether a dependency is ready to serve traffic.
type Checker func(ctx context.Context) error

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Planner domain
	plannerUC planner.UseCase
	metrics   *metrics.Metrics
	rateLimit middleware.Config

	// Readiness
	checkers map[string]Checker
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	// Planner domain
	PlannerUseCase planner.UseCase
	Metrics        *metrics.Metrics
	RateLimit      middleware.Config

	// Readiness checks by dependency name, e.g. "postgres".
	Checkers map[string]Checker
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetrics()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		plannerUC:       cfg.PlannerUseCase,
		metrics:         cfg.Metrics,
		rateLimit:       cfg.RateLimit,
		checkers:        cfg.Checkers,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.plannerUC == nil {
		return errors.New("planner use case is required")
	}
	return nil
}
