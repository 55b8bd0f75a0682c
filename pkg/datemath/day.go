package datemath

import "time"

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// NextDay returns local midnight of the day after the one containing t.
// Days are not assumed to be 24 hours long.
func NextDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
}

// NextHour returns the start of the local hour after the one containing t.
func NextHour(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc).Add(time.Hour)
	if !next.After(t) {
		next = t.Add(time.Hour)
	}
	return next
}

// SplitDays cuts [start, end) at local day boundaries.
func SplitDays(start, end time.Time, loc *time.Location) []Span {
	var out []Span
	for cur := start; cur.Before(end); {
		next := NextDay(cur, loc)
		if next.After(end) {
			next = end
		}
		out = append(out, Span{Start: cur, End: next})
		cur = next
	}
	return out
}
