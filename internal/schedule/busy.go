package schedule

import (
	"time"

	"schedule-proposer/pkg/datemath"
)

// ExpandAllDay turns an all-day event covering [startDate, endDate) into one busy interval
// per day spanning the policy's working hours. An end date not after the start date is
// treated as a single-day event.
func ExpandAllDay(startDate, endDate time.Time, policy WorkingHoursPolicy) []BusyInterval {
	first := datemath.StartOfDay(startDate)
	days := max(datemath.DaysBetween(first, datemath.StartOfDay(endDate)), 1)

	out := make([]BusyInterval, 0, days)
	for d := 0; d < days; d++ {
		day := first.AddDate(0, 0, d)
		out = append(out, BusyInterval{
			Start: time.Date(day.Year(), day.Month(), day.Day(), policy.StartHour, 0, 0, 0, day.Location()),
			End:   time.Date(day.Year(), day.Month(), day.Day(), policy.EndHour, 0, 0, 0, day.Location()),
		})
	}
	return out
}
