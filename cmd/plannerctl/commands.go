package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"study-planner/internal/app"
	"study-planner/internal/model"
	"study-planner/internal/planner"
	plannerRepo "study-planner/internal/planner/repository/postgre"
	"study-planner/pkg/datemath"
	"study-planner/pkg/postgres"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the planner tables and indexes when missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			db, err := postgres.Connect(cmd.Context(), postgres.Config{DSN: e.cfg.Postgres.DSN})
			if err != nil {
				return err
			}
			defer db.Close()

			if err := plannerRepo.EnsureSchema(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newPlanCommand() *cobra.Command {
	var (
		dryRun   bool
		from, to string
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run a scheduling pass for a user",
		Example: `  plannerctl plan -u student-42 --dry-run
  plannerctl plan -u student-42 --from tomorrow --to "in 2 weeks"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App, p *datemath.Parser, sc model.Scope) error {
				now := time.Now()
				in := planner.PlanInput{DryRun: dryRun}
				var err error
				if in.From, err = parseTime(p, from, now); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				if in.To, err = parseTime(p, to, now); err != nil {
					return fmt.Errorf("--to: %w", err)
				}

				out, err := a.UseCase.Plan(cmd.Context(), sc, in)
				if err != nil {
					return err
				}
				if outputFormat == "json" {
					return printJSON(cmd.OutOrStdout(), out)
				}

				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "placed %d blocks, %.2fh of %.2fh available (replaced %d, dry run %t)\n",
					len(out.Blocks), out.ScheduledHours, out.AvailableHours, out.Replaced, out.DryRun)
				printBlocks(cmd, out.Blocks)
				for _, wr := range out.Warnings {
					fmt.Fprintf(w, "warning [%s] %s\n", wr.Kind, wr.Message)
				}
				for _, c := range out.Conflicts {
					fmt.Fprintf(w, "conflict [%s] %s\n", c.Kind, c.Detail)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the pass without writing anything")
	cmd.Flags().StringVar(&from, "from", "", "Range start: RFC3339, YYYY-MM-DD or a relative date (default: now)")
	cmd.Flags().StringVar(&to, "to", "", "Range end: RFC3339, YYYY-MM-DD or a relative date (default: horizon end)")
	return cmd
}

func newLearnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "learn",
		Short: "Fold unconsumed session logs and completions into the productivity profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App, _ *datemath.Parser, sc model.Scope) error {
				out, err := a.UseCase.LearnProfile(cmd.Context(), sc)
				if err != nil {
					return err
				}
				if outputFormat == "json" {
					return printJSON(cmd.OutOrStdout(), out)
				}
				p := out.Profile
				fmt.Fprintf(cmd.OutOrStdout(),
					"consumed %d entries and %d completions\ndata points %d, completion ratio %.2f, peak hours %v, avoid hours %v\n",
					out.EntriesConsumed, out.Completions, p.DataPoints, p.AvgTaskCompletionRatio, p.PeakHours, p.AvoidHours)
				return nil
			})
		},
	}
}

func newScheduleCommand() *cobra.Command {
	var rng string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the schedule view for a user",
		Example: `  plannerctl schedule -u student-42
  plannerctl schedule -u student-42 --range "next week"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App, p *datemath.Parser, sc model.Scope) error {
				in := planner.ScheduleInput{}
				if rng != "" {
					span, err := p.ParseRange(rng, time.Now())
					if err != nil {
						return fmt.Errorf("--range: %w", err)
					}
					in.From, in.To = span.Start, span.End
				}
				view, err := a.UseCase.GetSchedule(cmd.Context(), sc, in)
				if err != nil {
					return err
				}
				if outputFormat == "json" {
					return printJSON(cmd.OutOrStdout(), view)
				}

				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%s .. %s: %.2fh scheduled, %.2fh free\n",
					view.From.Format(time.RFC3339), view.To.Format(time.RFC3339), view.TotalScheduledHours, view.FreeHours)
				printBlocks(cmd, view.Blocks)
				for _, d := range view.DueSoon {
					fmt.Fprintf(w, "due soon (%dh) %s in %.1fh\n", d.ThresholdHours, d.Title, d.HoursLeft)
				}
				for _, msg := range view.Warnings {
					fmt.Fprintf(w, "warning %s\n", msg)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rng, "range", "", `Range such as "today", "this week", "next 3 days" (default: the configured view range)`)
	return cmd
}

func printBlocks(cmd *cobra.Command, blocks []model.ScheduledBlock) {
	w := cmd.OutOrStdout()
	for _, b := range blocks {
		fmt.Fprintf(w, "  %s  %s-%s  %-40s %.2fh\n",
			b.Start.Format("Mon 2006-01-02"), b.Start.Format("15:04"), b.End.Format("15:04"), b.ObligationTitle, b.Hours())
	}
}

// parseTime returns the zero time for an empty flag.
func parseTime(p *datemath.Parser, s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return p.Parse(s, now)
}
