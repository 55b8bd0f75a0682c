package datemath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownExpression = errors.New("unknown date expression")

	inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)
	nextDaysRe   = regexp.MustCompile(`^next (\d+) days?$`)
)

// Parser converts relative date strings to absolute times in one location.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Ho_Chi_Minh"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts a date expression to an absolute time. RFC3339 timestamps and
// YYYY-MM-DD dates are accepted besides the relative forms.
func (p *Parser) Parse(expr string, baseTime time.Time) (time.Time, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	switch expr {
	case "now":
		return baseTime, nil
	case "today":
		return StartOfDay(baseTime, p.location), nil
	case "tomorrow":
		return StartOfDay(baseTime.AddDate(0, 0, 1), p.location), nil
	case "yesterday":
		return StartOfDay(baseTime.AddDate(0, 0, -1), p.location), nil
	}

	if strings.HasPrefix(expr, "in ") {
		return p.parseInDuration(expr, baseTime)
	}

	if strings.HasPrefix(expr, "next ") {
		return p.parseNextWeekday(expr, baseTime)
	}

	if t, err := time.Parse(time.RFC3339, strings.ToUpper(expr)); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, expr, p.location); err == nil {
		return t, nil
	}

	return baseTime, fmt.Errorf("%w: %q", ErrUnknownExpression, expr)
}

// ParseRange converts a range expression to a span. Besides the single-day forms
// accepted by Parse, it understands "this week", "next week" and "next N days".
func (p *Parser) ParseRange(expr string, baseTime time.Time) (Span, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	switch expr {
	case "this week":
		start := p.startOfWeek(baseTime)
		return Span{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case "next week":
		start := p.startOfWeek(baseTime).AddDate(0, 0, 7)
		return Span{Start: start, End: start.AddDate(0, 0, 7)}, nil
	}

	if m := nextDaysRe.FindStringSubmatch(expr); len(m) == 2 {
		n, _ := strconv.Atoi(m[1])
		if n <= 0 {
			return Span{}, fmt.Errorf("%w: %q", ErrUnknownExpression, expr)
		}
		start := StartOfDay(baseTime, p.location)
		return Span{Start: start, End: start.AddDate(0, 0, n)}, nil
	}

	day, err := p.Parse(expr, baseTime)
	if err != nil {
		return Span{}, err
	}
	start := StartOfDay(day, p.location)
	return Span{Start: start, End: NextDay(start, p.location)}, nil
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(expr string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(expr)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", expr)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return StartOfDay(baseTime.AddDate(0, 0, amount), p.location), nil
	case strings.HasPrefix(unit, "week"):
		return StartOfDay(baseTime.AddDate(0, 0, amount*7), p.location), nil
	case strings.HasPrefix(unit, "month"):
		return StartOfDay(baseTime.AddDate(0, amount, 0), p.location), nil
	}

	return baseTime, fmt.Errorf("unknown time unit: %q", unit)
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(expr string, baseTime time.Time) (time.Time, error) {
	dayName := strings.TrimPrefix(expr, "next ")
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	currentWeekday := baseTime.In(p.location).Weekday()
	daysUntil := int(targetWeekday - currentWeekday)
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return StartOfDay(baseTime.AddDate(0, 0, daysUntil), p.location), nil
}

// startOfWeek returns local midnight of the Monday of baseTime's week.
func (p *Parser) startOfWeek(baseTime time.Time) time.Time {
	day := StartOfDay(baseTime, p.location)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
