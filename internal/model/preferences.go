package model

import "time"

// Notification preference keys.
const (
	NotifyMorningDigest    = "morning_digest"
	NotifyWeeklyPlan       = "weekly_plan"
	NotifyDeadlineWarnings = "deadline_warnings"
	NotifyNewTaskDetected  = "new_task_detected"
)

// UserPreferences are read-only inputs to scoring and scheduling.
type UserPreferences struct {
	SleepStartHour          int
	SleepEndHour            int
	BufferHours             map[Category]float64
	Notifications           map[string]bool
	CategoryWeightOverrides map[Category]float64
}

// DefaultBufferHours is the lead time kept before each category's deadline.
var DefaultBufferHours = map[Category]float64{
	CategoryExam:       24,
	CategoryProject:    12,
	CategoryAssignment: 4,
	CategoryQuiz:       2,
	CategoryLab:        2,
	CategoryReading:    0,
	CategoryDiscussion: 0,
	CategoryOther:      0,
}

// DefaultUserPreferences returns the preferences used when none are stored.
func DefaultUserPreferences() UserPreferences {
	buffers := make(map[Category]float64, len(DefaultBufferHours))
	for k, v := range DefaultBufferHours {
		buffers[k] = v
	}
	return UserPreferences{
		SleepStartHour: 23,
		SleepEndHour:   8,
		BufferHours:    buffers,
		Notifications: map[string]bool{
			NotifyMorningDigest:    true,
			NotifyWeeklyPlan:       true,
			NotifyDeadlineWarnings: true,
			NotifyNewTaskDetected:  true,
		},
		CategoryWeightOverrides: map[Category]float64{},
	}
}

// Buffer returns the deadline buffer for c.
func (p UserPreferences) Buffer(c Category) time.Duration {
	hours, ok := p.BufferHours[c]
	if !ok {
		hours = DefaultBufferHours[c]
	}
	if hours < 0 {
		hours = 0
	}
	return time.Duration(hours * float64(time.Hour))
}

// InSleep reports whether hour falls in the sleep window. The window may wrap midnight.
func (p UserPreferences) InSleep(hour int) bool {
	start, end := p.SleepStartHour, p.SleepEndHour
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}
