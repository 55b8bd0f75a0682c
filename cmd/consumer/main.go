package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"study-planner/config"
	"study-planner/internal/app"
	plannerEvent "study-planner/internal/planner/delivery/event"
	"study-planner/pkg/log"
)

// main is the entry point for the background consumer service.
// This binary consumes planner events from NATS JetStream and re-plans
// the schedule of every user whose obligations were synced.
//
// Pattern:
//  1. Initialize infra (same as cmd/api/main.go)
//  2. Create UseCases
//  3. Subscribe event handlers
//  4. Run & graceful shutdown
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting consumer service...")

	// Infrastructure
	a, err := app.Init(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize planner: ", err)
		return
	}
	defer a.Close()

	if a.Bus == nil {
		logger.Error(ctx, "nats.url is required for the consumer service")
		return
	}

	// Event handlers
	if err := plannerEvent.New(logger, a.UseCase).Register(a.Bus); err != nil {
		logger.Error(ctx, "Failed to subscribe planner events: ", err)
		return
	}

	logger.Info(ctx, "Consumer service running. Waiting for shutdown signal...")
	<-ctx.Done()
	logger.Info(ctx, "Consumer service stopped gracefully")
}
