package schedule

import (
	"fmt"
	"time"
)

// BusyInterval is a half-open [Start, End) period during which no slot may be placed.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end) intersects the interval.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// WorkingHoursPolicy constrains where slots may be generated. It is immutable per run.
type WorkingHoursPolicy struct {
	StartHour              int
	EndHour                int
	SlotDurationMinutes    int
	SlotGranularityMinutes int
	SkipWeekends           bool
	HorizonDays            int
}

// DefaultPolicy mirrors the original mail assistant settings: weekday evenings,
// one-hour meetings, thirty days ahead.
func DefaultPolicy() WorkingHoursPolicy {
	return WorkingHoursPolicy{
		StartHour:              18,
		EndHour:                23,
		SlotDurationMinutes:    60,
		SlotGranularityMinutes: 30,
		SkipWeekends:           true,
		HorizonDays:            30,
	}
}

// Validate rejects policies that cannot produce a meaningful slot grid.
func (p WorkingHoursPolicy) Validate() error {
	switch {
	case p.StartHour < 0 || p.StartHour > 24 || p.EndHour < 0 || p.EndHour > 24:
		return fmt.Errorf("%w: hours must be within 0..24", ErrInvalidPolicy)
	case p.StartHour >= p.EndHour:
		return fmt.Errorf("%w: start_hour %d must be before end_hour %d", ErrInvalidPolicy, p.StartHour, p.EndHour)
	case p.SlotDurationMinutes <= 0:
		return fmt.Errorf("%w: slot duration must be positive", ErrInvalidPolicy)
	case p.SlotGranularityMinutes <= 0:
		return fmt.Errorf("%w: slot granularity must be positive", ErrInvalidPolicy)
	case p.HorizonDays <= 0:
		return fmt.Errorf("%w: horizon must be positive", ErrInvalidPolicy)
	}
	return nil
}

// SlotDuration returns the slot length as a time.Duration.
func (p WorkingHoursPolicy) SlotDuration() time.Duration {
	return time.Duration(p.SlotDurationMinutes) * time.Minute
}

// Slot is a concrete bookable window.
type Slot struct {
	Date    time.Time // local midnight of the slot's day
	Weekday int       // 0=Mon .. 6=Sun
	Start   time.Time
	End     time.Time
}

// Duration returns End - Start.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Outcome classifies a matching decision.
type Outcome string

const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeBestOfMany     Outcome = "best_of_many"
	OutcomeNearestOffered Outcome = "nearest_offered"
	OutcomeNoSlots        Outcome = "no_slots"
	OutcomeFailed         Outcome = "failed"
)

// MatchResult is the externally visible decision. Slot strings never carry a year.
type MatchResult struct {
	HasMatch         bool     `json:"has_match"`
	SelectedSlot     string   `json:"selected_slot"`
	AlternativeSlots []string `json:"alternative_slots"`
	Message          string   `json:"message"`
}

// ProposeInput is the input for a proposal run.
type ProposeInput struct {
	Text         string   // free text of the inbound message
	Candidates   []string // pre-extracted raw candidates, skips pattern scanning when non-empty
	SkipAnalysis bool     // do not call the LLM analysis step
}

// ProposeOutput is the result of a proposal run.
type ProposeOutput struct {
	Result      MatchResult
	Outcome     Outcome
	Suggestions []string // parsed suggestions, formatted without year
	SlotCount   int
	Degraded    bool // calendar unavailable, fallback slots were used
}

// AvailableSlotsOutput lists the free slots inside the horizon.
type AvailableSlotsOutput struct {
	Slots    []string
	Degraded bool
}

// AnalysisResult is what the LLM analysis step extracts from a message.
type AnalysisResult struct {
	Summary    string
	Candidates []string
}
