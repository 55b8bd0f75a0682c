package gcalendar

import "time"

const (
	DefaultCalendarID = "primary"
	DefaultTokenPath  = "token.json"
)

// FreeBusyRequest is the input for a free/busy query.
type FreeBusyRequest struct {
	CalendarIDs []string // defaults to the primary calendar
	TimeMin     time.Time
	TimeMax     time.Time
	Timezone    string // e.g. "America/New_York"
}

// Busy is one busy interval reported by a calendar.
type Busy struct {
	CalendarID string
	Start      time.Time
	End        time.Time
}
