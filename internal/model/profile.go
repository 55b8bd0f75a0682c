package model

import (
	"slices"
	"time"
)

// NeutralMultiplier is the multiplier assumed for an hour or day with no observations.
// It equals a focus rating of 3 on the 1-5 scale.
const NeutralMultiplier = 0.6

// ProductivityProfile holds the learned productivity patterns of one user.
type ProductivityProfile struct {
	UserID                 string
	ProductivityByHour     map[int]float64 // hour of day 0-23
	ProductivityByDay      map[int]float64 // day of week, Monday = 0
	AvgTaskCompletionRatio float64
	PreferredBlockMinutes  int
	BreakMinutes           int
	PeakHours              []int
	AvoidHours             []int
	DataPoints             int
	CompletionSamples      int
	LastUpdated            time.Time
	// CompletionsThrough is the latest completion time folded into the ratio.
	CompletionsThrough time.Time
}

// DefaultProductivityProfile returns the cold-start profile.
func DefaultProductivityProfile() ProductivityProfile {
	return ProductivityProfile{
		ProductivityByHour:     map[int]float64{},
		ProductivityByDay:      map[int]float64{},
		AvgTaskCompletionRatio: 1.0,
		PreferredBlockMinutes:  90,
		BreakMinutes:           15,
		PeakHours:              []int{8, 9, 10, 15, 16},
		AvoidHours:             []int{13, 14, 22, 23},
	}
}

// Clone returns a deep copy so callers can mutate the result freely.
func (p ProductivityProfile) Clone() ProductivityProfile {
	out := p
	out.ProductivityByHour = make(map[int]float64, len(p.ProductivityByHour))
	for k, v := range p.ProductivityByHour {
		out.ProductivityByHour[k] = v
	}
	out.ProductivityByDay = make(map[int]float64, len(p.ProductivityByDay))
	for k, v := range p.ProductivityByDay {
		out.ProductivityByDay[k] = v
	}
	out.PeakHours = slices.Clone(p.PeakHours)
	out.AvoidHours = slices.Clone(p.AvoidHours)
	return out
}

// HourMultiplier returns the learned multiplier for hour, or the neutral value.
func (p ProductivityProfile) HourMultiplier(hour int) float64 {
	if v, ok := p.ProductivityByHour[hour]; ok {
		return v
	}
	return NeutralMultiplier
}

// DayMultiplier returns the learned multiplier for day, or the neutral value.
func (p ProductivityProfile) DayMultiplier(day int) float64 {
	if v, ok := p.ProductivityByDay[day]; ok {
		return v
	}
	return NeutralMultiplier
}

// BlockLength returns the preferred block length.
func (p ProductivityProfile) BlockLength() time.Duration {
	if p.PreferredBlockMinutes <= 0 {
		return 90 * time.Minute
	}
	return time.Duration(p.PreferredBlockMinutes) * time.Minute
}

// BreakLength returns the break between consecutive blocks.
func (p ProductivityProfile) BreakLength() time.Duration {
	if p.BreakMinutes < 0 {
		return 0
	}
	return time.Duration(p.BreakMinutes) * time.Minute
}

// IsPeakHour reports whether hour is in the peak list.
func (p ProductivityProfile) IsPeakHour(hour int) bool {
	return slices.Contains(p.PeakHours, hour)
}

// IsAvoidHour reports whether hour is in the avoid list.
func (p ProductivityProfile) IsAvoidHour(hour int) bool {
	return slices.Contains(p.AvoidHours, hour)
}

// ProductivityLogEntry is one observed work session. Immutable once created.
type ProductivityLogEntry struct {
	ID           string
	UserID       string
	ObligationID string
	StartedAt    time.Time
	EndedAt      *time.Time
	FocusRating  *int // 1-5
	HourOfDay    int
	DayOfWeek    int // Monday = 0
	Notes        string
}

// NewProductivityLogEntry derives hour of day and day of week from start in loc.
func NewProductivityLogEntry(id, obligationID string, start time.Time, end *time.Time, rating *int, loc *time.Location) ProductivityLogEntry {
	if loc == nil {
		loc = time.UTC
	}
	local := start.In(loc)
	return ProductivityLogEntry{
		ID:           id,
		ObligationID: obligationID,
		StartedAt:    start,
		EndedAt:      end,
		FocusRating:  rating,
		HourOfDay:    local.Hour(),
		DayOfWeek:    WeekdayIndex(local),
	}
}

// WeekdayIndex maps t's weekday to 0 = Monday ... 6 = Sunday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
