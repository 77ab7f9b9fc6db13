package usecase

import (
	"sort"
	"time"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/datemath"
)

const (
	dateOnlyScore     = 50
	exactRangeBonus   = 20
	sameStartBonus    = 10
	maxSuggestedSlots = 3
	minAlternatives   = 2

	// Fallback ranking weights.
	recencyWindowDays    = 30
	timeOverlapPerHour   = 5
	eveningBandBonus     = 10
	eveningBandStartHour = 18
	eveningBandEndHour   = 22
	weekdayMatchBonus    = 15
	weekdayDefaultBonus  = 10
	weekendDefaultBonus  = 5
)

// matchCandidate is one scored (suggestion, slot) pair.
type matchCandidate struct {
	slot       schedule.Slot
	suggestion datemath.Suggestion
	score      int
}

// selection is the matcher's decision before formatting.
type selection struct {
	outcome      schedule.Outcome
	selected     *schedule.Slot
	alternatives []schedule.Slot
}

// scoreMatch rates how well slot fits s. Zero means no fit.
func scoreMatch(s datemath.Suggestion, slot schedule.Slot, minOverlap time.Duration) int {
	if !s.SameDate(slot.Date) {
		return 0
	}
	if !s.HasTime {
		return dateOnlyScore
	}

	slotDuration := slot.Duration()
	if slotDuration <= 0 {
		return 0
	}
	overlap := earlier(s.End, slot.End).Sub(later(s.Start, slot.Start))
	threshold := min(minOverlap, slotDuration)
	if overlap <= 0 || overlap < threshold {
		return 0
	}

	score := int(100 * overlap / slotDuration)
	switch {
	case s.Start.Equal(slot.Start) && s.End.Equal(slot.End):
		score += exactRangeBonus
	case s.Start.Equal(slot.Start):
		score += sameStartBonus
	}
	return score
}

// rankCandidates scores every pair and returns those above zero, best first. Ties keep
// slot chronology, then suggestion order.
func rankCandidates(slots []schedule.Slot, suggestions []datemath.Suggestion, minOverlap time.Duration) []matchCandidate {
	var out []matchCandidate
	for _, slot := range slots {
		for _, s := range suggestions {
			if score := scoreMatch(s, slot, minOverlap); score > 0 {
				out = append(out, matchCandidate{slot: slot, suggestion: s, score: score})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

// selectSlots decides the selected slot and alternatives for the given inputs. slots must
// be chronological.
func selectSlots(clock datemath.Clock, slots []schedule.Slot, suggestions []datemath.Suggestion, minOverlap time.Duration) selection {
	if len(slots) == 0 {
		return selection{outcome: schedule.OutcomeNoSlots}
	}

	if len(suggestions) == 0 {
		return offer(earliestPerDate(slots))
	}

	candidates := rankCandidates(slots, suggestions, minOverlap)
	if len(candidates) == 0 {
		return offer(fallbackRanking(clock, slots, suggestions))
	}

	best := candidates[0].slot
	if len(suggestions) == 1 {
		return selection{outcome: schedule.OutcomeAccepted, selected: &best}
	}

	return selection{
		outcome:      schedule.OutcomeBestOfMany,
		selected:     &best,
		alternatives: alternativesFor(best, candidates[1:], slots),
	}
}

// alternativesFor collects the next-best candidates on other dates, one per date, and
// backfills from the earliest slot of unused dates when fewer than two were found.
func alternativesFor(selected schedule.Slot, rest []matchCandidate, slots []schedule.Slot) []schedule.Slot {
	usedDates := map[string]bool{dateKey(selected): true}
	var out []schedule.Slot

	for _, c := range rest {
		if len(out) == maxSuggestedSlots {
			return out
		}
		if usedDates[dateKey(c.slot)] {
			continue
		}
		usedDates[dateKey(c.slot)] = true
		out = append(out, c.slot)
	}

	if len(out) >= minAlternatives {
		return out
	}
	for _, slot := range earliestPerDate(slots) {
		if len(out) == maxSuggestedSlots {
			break
		}
		if usedDates[dateKey(slot)] {
			continue
		}
		usedDates[dateKey(slot)] = true
		out = append(out, slot)
	}
	return out
}

// fallbackRanking orders slots by closeness to the suggestions when none fits directly,
// one slot per date, at most three.
func fallbackRanking(clock datemath.Clock, slots []schedule.Slot, suggestions []datemath.Suggestion) []schedule.Slot {
	type scoredSlot struct {
		slot  schedule.Slot
		score int
	}

	hasTime := false
	weekdays := make(map[int]bool)
	for _, s := range suggestions {
		hasTime = hasTime || s.HasTime
		weekdays[s.Weekday] = true
	}

	scored := make([]scoredSlot, 0, len(slots))
	for _, slot := range slots {
		score := max(recencyWindowDays-abs(clock.DaysFromToday(slot.Start)), 0)
		score += timePreference(slot, suggestions, hasTime)
		score += weekdayPreference(slot, weekdays)
		scored = append(scored, scoredSlot{slot: slot, score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	seen := make(map[string]bool)
	var out []schedule.Slot
	for _, s := range scored {
		if seen[dateKey(s.slot)] {
			continue
		}
		seen[dateKey(s.slot)] = true
		out = append(out, s.slot)
		if len(out) == maxSuggestedSlots {
			break
		}
	}
	return out
}

func timePreference(slot schedule.Slot, suggestions []datemath.Suggestion, hasTime bool) int {
	if !hasTime {
		if h := slot.Start.Hour(); h >= eveningBandStartHour && h < eveningBandEndHour {
			return eveningBandBonus
		}
		return 0
	}

	best := 0
	for _, s := range suggestions {
		if !s.HasTime {
			continue
		}
		best = max(best, timeOfDayOverlapMinutes(s.Start, s.End, slot.Start, slot.End))
	}
	return best * timeOverlapPerHour / 60
}

func weekdayPreference(slot schedule.Slot, weekdays map[int]bool) int {
	if len(weekdays) > 0 {
		if weekdays[slot.Weekday] {
			return weekdayMatchBonus
		}
		return 0
	}
	if slot.Weekday < 5 {
		return weekdayDefaultBonus
	}
	return weekendDefaultBonus
}

// timeOfDayOverlapMinutes compares two ranges by clock time only, ignoring their dates.
func timeOfDayOverlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	as := minuteOfDay(aStart)
	ae := as + int(aEnd.Sub(aStart).Minutes())
	bs := minuteOfDay(bStart)
	be := bs + int(bEnd.Sub(bStart).Minutes())
	return max(min(ae, be)-max(as, bs), 0)
}

// earliestPerDate returns the first slot of each date, keeping chronology.
func earliestPerDate(slots []schedule.Slot) []schedule.Slot {
	seen := make(map[string]bool)
	var out []schedule.Slot
	for _, slot := range slots {
		if seen[dateKey(slot)] {
			continue
		}
		seen[dateKey(slot)] = true
		out = append(out, slot)
	}
	return out
}

// offer turns a ranked list into a nearest-offered selection.
func offer(ranked []schedule.Slot) selection {
	if len(ranked) > maxSuggestedSlots {
		ranked = ranked[:maxSuggestedSlots]
	}
	sel := selection{outcome: schedule.OutcomeNearestOffered}
	if len(ranked) > 0 {
		first := ranked[0]
		sel.selected = &first
		sel.alternatives = ranked[1:]
	}
	return sel
}

func dateKey(slot schedule.Slot) string {
	return slot.Date.Format(time.DateOnly)
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
