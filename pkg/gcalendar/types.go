package gcalendar

import "time"

// Event is a simplified representation of a Google Calendar event.
// For all-day events StartTime/EndTime are local midnights and EndTime is exclusive.
type Event struct {
	ID        string
	Summary   string
	HtmlLink  string
	Location  string
	AllDay    bool
	StartTime time.Time
	EndTime   time.Time
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
	Location   *time.Location // zone for all-day dates and returned times, defaults to time.Local
}
