package builder

import (
	"errors"
	"fmt"
	"time"

	"study-planner/internal/model"
)

// ErrInvariantViolation means a build produced an impossible schedule. It is a
// programming defect and the whole build is rejected.
var ErrInvariantViolation = errors.New("schedule invariant violated")

// Config holds the capacity limits of the builder.
type Config struct {
	MaxDailyDeepWork time.Duration
	HorizonDays      int
	MinBlock         time.Duration
	Location         *time.Location
	// ScaleByCompletionRatio multiplies estimated hours by the profile's
	// average completion ratio. Off by default.
	ScaleByCompletionRatio bool
}

// DefaultConfig returns 6h of deep work per day over a 30 day horizon in UTC.
func DefaultConfig() Config {
	return Config{
		MaxDailyDeepWork: 6 * time.Hour,
		HorizonDays:      30,
		MinBlock:         30 * time.Minute,
		Location:         time.UTC,
	}
}

// Input is the immutable snapshot a build runs over.
type Input struct {
	// Obligations are the scored, conflict-free obligations to place.
	Obligations []model.Obligation
	// FreeWindows are the calendar's free intervals.
	FreeWindows []model.TimeWindow
	// Existing are blocks that stay on the calendar. Their time is unavailable,
	// they count against the daily cap and against their obligation's effort.
	Existing    []model.ScheduledBlock
	Profile     model.ProductivityProfile
	Preferences model.UserPreferences
	Now         time.Time
	// Range optionally narrows the horizon. A zero value means now to the horizon end.
	Range model.TimeWindow
}

// WarningKind classifies a recoverable condition found during planning.
type WarningKind string

const (
	WarningShortfall WarningKind = "shortfall"
	WarningExcluded  WarningKind = "excluded"
)

// Warning is a recoverable condition attached to a pass result.
type Warning struct {
	ObligationID   string      `json:"obligation_id"`
	Title          string      `json:"title"`
	Kind           WarningKind `json:"kind"`
	ShortfallHours float64     `json:"shortfall_hours,omitempty"`
	Message        string      `json:"message"`
}

// Excluded returns the warning for an obligation left out of a pass by a conflict.
func Excluded(o model.Obligation, kind model.ConflictKind) Warning {
	return Warning{
		ObligationID: o.ID,
		Title:        o.Title,
		Kind:         WarningExcluded,
		Message:      fmt.Sprintf("%q excluded from this pass: %s conflict", o.Title, kind),
	}
}

// Output is the result of one build.
type Output struct {
	Blocks         []model.ScheduledBlock
	Warnings       []Warning
	ScheduledHours float64
	// AvailableHours is the usable slot capacity before placement.
	AvailableHours float64
}
