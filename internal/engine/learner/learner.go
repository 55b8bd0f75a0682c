// Package learner maintains productivity profiles from observed work sessions.
package learner

import (
	"cmp"
	"slices"
	"time"

	"study-planner/internal/model"
)

// Config holds the tunables of the learner.
type Config struct {
	// MaxSamples caps the effective sample count in alpha = 1/min(n+1, MaxSamples).
	MaxSamples int
	// ConfidenceThreshold is the number of data points that must be exceeded
	// before peak and avoid hours are recomputed.
	ConfidenceThreshold int
	PeakCount           int
	AvoidCount          int
	MinCompletionRatio  float64
	MaxCompletionRatio  float64
}

// DefaultConfig returns the learner configuration used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MaxSamples:          20,
		ConfidenceThreshold: 10,
		PeakCount:           5,
		AvoidCount:          4,
		MinCompletionRatio:  0.2,
		MaxCompletionRatio:  3.0,
	}
}

// Learner updates productivity profiles. It holds no state besides its config.
type Learner struct {
	cfg Config
}

// New returns a Learner using cfg, with unset values defaulted.
func New(cfg Config) Learner {
	def := DefaultConfig()
	if cfg.MaxSamples <= 0 {
		cfg.MaxSamples = def.MaxSamples
	}
	if cfg.ConfidenceThreshold < 0 {
		cfg.ConfidenceThreshold = def.ConfidenceThreshold
	}
	if cfg.PeakCount <= 0 {
		cfg.PeakCount = def.PeakCount
	}
	if cfg.AvoidCount <= 0 {
		cfg.AvoidCount = def.AvoidCount
	}
	if cfg.MinCompletionRatio <= 0 {
		cfg.MinCompletionRatio = def.MinCompletionRatio
	}
	if cfg.MaxCompletionRatio < cfg.MinCompletionRatio {
		cfg.MaxCompletionRatio = def.MaxCompletionRatio
	}
	return Learner{cfg: cfg}
}

// Update folds new log entries and completions into profile and returns the result.
// The input profile is not modified. Entries without a focus rating are skipped,
// as are completions without both estimated and actual hours. Callers must pass
// each entry once.
func (l Learner) Update(
	profile model.ProductivityProfile,
	entries []model.ProductivityLogEntry,
	completions []model.Completion,
	now time.Time,
) model.ProductivityProfile {
	out := profile.Clone()
	if out.AvgTaskCompletionRatio <= 0 {
		out.AvgTaskCompletionRatio = 1
	}
	changed := false

	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, func(a, b model.ProductivityLogEntry) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	for _, e := range ordered {
		observed, ok := normalizeRating(e.FocusRating)
		if !ok || e.HourOfDay < 0 || e.HourOfDay > 23 || e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			continue
		}
		alpha := l.alpha(out.DataPoints)
		out.ProductivityByHour[e.HourOfDay] = ema(out.HourMultiplier(e.HourOfDay), observed, alpha)
		out.ProductivityByDay[e.DayOfWeek] = ema(out.DayMultiplier(e.DayOfWeek), observed, alpha)
		out.DataPoints++
		changed = true
	}

	done := slices.Clone(completions)
	slices.SortStableFunc(done, func(a, b model.Completion) int {
		if c := a.CompletedAt.Compare(b.CompletedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ObligationID, b.ObligationID)
	})
	for _, c := range done {
		if c.CompletedAt.After(out.CompletionsThrough) {
			out.CompletionsThrough = c.CompletedAt
		}
		if c.EstimatedHours <= 0 || c.ActualHours <= 0 {
			continue
		}
		ratio := clamp(c.ActualHours/c.EstimatedHours, l.cfg.MinCompletionRatio, l.cfg.MaxCompletionRatio)
		out.AvgTaskCompletionRatio = ema(out.AvgTaskCompletionRatio, ratio, l.alpha(out.CompletionSamples))
		out.CompletionSamples++
		changed = true
	}

	if out.DataPoints > l.cfg.ConfidenceThreshold {
		peaks, avoid := l.rankHours(out.ProductivityByHour)
		out.PeakHours = peaks
		out.AvoidHours = avoid
	}

	if changed {
		out.LastUpdated = now
	}
	return out
}

// rankHours returns the top hours scoring above the neutral multiplier and the
// bottom hours scoring below it, each sorted ascending. An hour with no
// observations counts as neutral and lands in neither list.
func (l Learner) rankHours(byHour map[int]float64) ([]int, []int) {
	var above, below []int
	for h, v := range byHour {
		switch {
		case v > model.NeutralMultiplier:
			above = append(above, h)
		case v < model.NeutralMultiplier:
			below = append(below, h)
		}
	}
	byScore := func(a, b int) int {
		if c := cmp.Compare(byHour[b], byHour[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	}
	slices.SortFunc(above, byScore)
	slices.SortFunc(below, byScore)

	peaks := slices.Clone(above[:min(l.cfg.PeakCount, len(above))])
	avoid := slices.Clone(below[len(below)-min(l.cfg.AvoidCount, len(below)):])

	slices.Sort(peaks)
	slices.Sort(avoid)
	return peaks, avoid
}

func (l Learner) alpha(samples int) float64 {
	return 1 / float64(min(samples+1, l.cfg.MaxSamples))
}

// normalizeRating maps a 1-5 focus rating onto 0.2-1.0.
func normalizeRating(rating *int) (float64, bool) {
	if rating == nil || *rating < 1 || *rating > 5 {
		return 0, false
	}
	return float64(*rating) / 5, true
}

func ema(current, observed, alpha float64) float64 {
	return current + alpha*(observed-current)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
