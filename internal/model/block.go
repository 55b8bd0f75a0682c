package model

import "time"

// ScheduledBlock is a time interval allocated to exactly one obligation.
type ScheduledBlock struct {
	ID              string
	UserID          string
	ObligationID    string
	ObligationTitle string
	Start           time.Time
	End             time.Time
	Status          BlockStatus
}

// Duration returns the length of the block.
func (b ScheduledBlock) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Hours returns the length of the block in hours.
func (b ScheduledBlock) Hours() float64 {
	return b.Duration().Hours()
}

// Overlaps reports whether two blocks share any instant.
func (b ScheduledBlock) Overlaps(other ScheduledBlock) bool {
	return b.Start.Before(other.End) && other.Start.Before(b.End)
}

// TimeWindow is a half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the window, zero for empty or inverted windows.
func (w TimeWindow) Duration() time.Duration {
	if !w.End.After(w.Start) {
		return 0
	}
	return w.End.Sub(w.Start)
}

// Empty reports whether the window contains no time.
func (w TimeWindow) Empty() bool {
	return !w.End.After(w.Start)
}

// Clip returns the intersection of w and bounds.
func (w TimeWindow) Clip(bounds TimeWindow) TimeWindow {
	out := w
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}
