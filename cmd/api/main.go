package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"study-planner/config"
	_ "study-planner/docs" // Swagger docs
	"study-planner/internal/app"
	"study-planner/internal/httpserver"
	"study-planner/internal/middleware"
	"study-planner/pkg/log"
)

// @title       Study Planner API
// @description Deadline-aware study planner: priority scoring, conflict detection, schedule building and productivity learning.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Study Planner API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Planner timezone: %s", cfg.Planner.Timezone)

	// 3. Infrastructure and planner domain
	a, err := app.Init(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize planner: ", err)
		return
	}
	defer a.Close()

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		PlannerUseCase:  a.UseCase,
		Metrics:         a.Metrics,
		RateLimit: middleware.Config{
			RequestsPerMin: cfg.RateLimit.RequestsPerMin,
			Burst:          cfg.RateLimit.Burst,
			MaxUsers:       cfg.RateLimit.MaxUsers,
			TTL:            cfg.RateLimit.TTL,
		},
		Checkers: a.Checkers,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
