package usecase

import (
	"time"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/datemath"
)

// fallbackStartHour is where the placeholder slots begin when the calendar is unreachable.
const fallbackStartHour = 18

// GenerateSlots enumerates every free slot in [today, today+HorizonDays) in chronological
// order. An invalid policy yields no slots.
func GenerateSlots(clock datemath.Clock, policy schedule.WorkingHoursPolicy, busy []schedule.BusyInterval) []schedule.Slot {
	if policy.Validate() != nil {
		return nil
	}

	now := clock.Now()
	today := clock.Today()
	duration := policy.SlotDuration()

	var slots []schedule.Slot
	for d := 0; d < policy.HorizonDays; d++ {
		day := today.AddDate(0, 0, d)
		if policy.SkipWeekends && datemath.IsWeekend(day) {
			continue
		}
		dayEnd := atClock(day, policy.EndHour, 0)

		for hour := policy.StartHour; hour < policy.EndHour; hour++ {
			for minute := 0; minute < 60; minute += policy.SlotGranularityMinutes {
				start := atClock(day, hour, minute)
				end := start.Add(duration)
				if end.After(dayEnd) || !start.After(now) || overlapsBusy(start, end, busy) {
					continue
				}
				slots = append(slots, newSlot(day, start, end))
			}
		}
	}
	return slots
}

// FallbackSlots returns the two placeholder slots offered when the calendar cannot be
// read: 18:00 on each of the next two calendar days.
func FallbackSlots(clock datemath.Clock, policy schedule.WorkingHoursPolicy) []schedule.Slot {
	duration := policy.SlotDuration()
	if duration <= 0 {
		duration = time.Hour
	}

	today := clock.Today()
	slots := make([]schedule.Slot, 0, 2)
	for d := 1; d <= 2; d++ {
		day := today.AddDate(0, 0, d)
		start := atClock(day, fallbackStartHour, 0)
		slots = append(slots, newSlot(day, start, start.Add(duration)))
	}
	return slots
}

func newSlot(day, start, end time.Time) schedule.Slot {
	return schedule.Slot{
		Date:    day,
		Weekday: datemath.MondayIndex(day),
		Start:   start,
		End:     end,
	}
}

func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func overlapsBusy(start, end time.Time, busy []schedule.BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
