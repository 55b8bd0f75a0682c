package datemath

import "time"

// Span is a half-open time range [Start, End).
type Span struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the span, zero when inverted.
func (s Span) Duration() time.Duration {
	if !s.End.After(s.Start) {
		return 0
	}
	return s.End.Sub(s.Start)
}
