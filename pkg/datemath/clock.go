package datemath

import (
	"fmt"
	"time"
)

// Clock is the single reference point ("now" and the local zone) for every
// date computation of one request.
type Clock struct {
	now time.Time
}

// NewClock returns a Clock fixed at now. The location of now is the local zone.
func NewClock(now time.Time) Clock {
	return Clock{now: now}
}

// Now returns the reference instant.
func (c Clock) Now() time.Time {
	return c.now
}

// Location returns the local zone of the clock.
func (c Clock) Location() *time.Location {
	return c.now.Location()
}

// Year returns the reference year used when text omits one.
func (c Clock) Year() int {
	return c.now.Year()
}

// Today returns local midnight of the reference day.
func (c Clock) Today() time.Time {
	return StartOfDay(c.now)
}

// DaysFromToday returns the signed number of calendar days between today and t.
func (c Clock) DaysFromToday(t time.Time) int {
	return DaysBetween(c.Today(), StartOfDay(t.In(c.Location())))
}

// LoadLocation resolves an IANA zone name, e.g. "Asia/Tokyo".
func LoadLocation(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// StartOfDay returns midnight at the start of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b, both at midnight.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// MondayIndex maps t's weekday to 0=Mon .. 6=Sun.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return MondayIndex(t) >= 5
}

// WeekdayKanji returns the single-kanji weekday label (月..日) for t.
func WeekdayKanji(t time.Time) string {
	return weekdayKanji[MondayIndex(t)]
}
