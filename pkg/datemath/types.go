package datemath

import "time"

// Suggestion is a structured date/time candidate derived from free text.
// A suggestion without a time only constrains the date.
type Suggestion struct {
	OriginalText string
	Year         int
	Month        int
	Day          int
	Weekday      int // 0=Mon .. 6=Sun, always derived from the date
	Date         time.Time
	HasTime      bool
	Start        time.Time
	End          time.Time
}

// SameDate reports whether t falls on the suggestion's calendar date.
func (s Suggestion) SameDate(t time.Time) bool {
	return t.Year() == s.Year && int(t.Month()) == s.Month && t.Day() == s.Day
}

// key identifies a suggestion for deduplication.
func (s Suggestion) key() string {
	if !s.HasTime {
		return s.Date.Format("2006-01-02")
	}
	return s.Start.Format("2006-01-02T15:04") + "/" + s.End.Format("2006-01-02T15:04")
}

// span is a byte range of a pattern match inside the scanned text.
type span struct {
	start int
	end   int
}

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// dateParts is the structured output of a date pattern.
type dateParts struct {
	year    int
	month   int
	day     int
	hasYear bool
}

// timeParts is the structured output of a time pattern. Markers are "午前",
// "午後", "am", "pm" or "".
type timeParts struct {
	startHour   int
	startMinute int
	startMarker string
	hasEnd      bool
	endHour     int
	endMinute   int
	endMarker   string
}

// dateMatch is a date pattern hit inside scanned text.
type dateMatch struct {
	span
	text  string
	parts dateParts
}

// timeMatch is a time pattern hit inside scanned text.
type timeMatch struct {
	span
	text  string
	parts timeParts
}
