package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"study-planner/config"
	"study-planner/internal/app"
	"study-planner/internal/model"
	"study-planner/pkg/datemath"
	"study-planner/pkg/log"
)

const version = "1.0.0"

var (
	userID       string
	outputFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plannerctl",
		Short: "Study planner CLI - run planner operations against the configured database",
		Long: `plannerctl runs planner operations directly against the database configured
in config.yaml (or the matching environment variables). It is meant for
migrations, cron jobs and debugging a single user's schedule.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", os.Getenv("PLANNER_USER"), "User ID to act for")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newPlanCommand())
	rootCmd.AddCommand(newLearnCommand())
	rootCmd.AddCommand(newScheduleCommand())
	rootCmd.AddCommand(newCalendarAuthCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env is what every command needs once the configuration is loaded.
type env struct {
	cfg *config.Config
	l   log.Logger
}

func loadEnv() (env, error) {
	cfg, err := config.Load()
	if err != nil {
		return env{}, fmt.Errorf("failed to load config: %w", err)
	}
	l := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	return env{cfg: cfg, l: l}, nil
}

// parser reads date expressions in the planner timezone.
func (e env) parser() (*datemath.Parser, error) {
	return datemath.NewParser(e.cfg.Planner.Timezone)
}

// withApp runs fn with an initialized App, a date parser and the caller's scope.
func withApp(ctx context.Context, fn func(a *app.App, p *datemath.Parser, sc model.Scope) error) error {
	if userID == "" {
		return fmt.Errorf("--user is required")
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	p, err := e.parser()
	if err != nil {
		return err
	}
	a, err := app.Init(ctx, e.cfg, e.l)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a, p, model.Scope{UserID: userID})
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
