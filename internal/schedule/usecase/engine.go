package usecase

import (
	"fmt"
	"time"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/datemath"
)

// DefaultMinOverlapMinutes is the smallest overlap that counts as a timed match.
const DefaultMinOverlapMinutes = 30

// Engine is the pure matching core: no I/O, no logging, no shared state between calls.
type Engine struct {
	parser     *datemath.Parser
	extractor  *datemath.Extractor
	minOverlap time.Duration
}

// NewEngine creates an Engine. A non-positive minOverlapMinutes selects
// DefaultMinOverlapMinutes.
func NewEngine(parser *datemath.Parser, extractor *datemath.Extractor, minOverlapMinutes int) *Engine {
	if minOverlapMinutes <= 0 {
		minOverlapMinutes = DefaultMinOverlapMinutes
	}
	return &Engine{
		parser:     parser,
		extractor:  extractor,
		minOverlap: time.Duration(minOverlapMinutes) * time.Minute,
	}
}

// Match generates the slots from busy and policy, then decides as Decide does.
func (e *Engine) Match(clock datemath.Clock, policy schedule.WorkingHoursPolicy, busy []schedule.BusyInterval, text string, preExtracted []string) (d Decision) {
	defer e.recoverInto(&d)
	return e.Decide(clock, GenerateSlots(clock, policy, busy), text, preExtracted)
}

// Decide extracts suggestions from text (or uses preExtracted verbatim) and matches them
// against slots, which must be chronological. Internal failures are recovered into an
// OutcomeFailed decision.
func (e *Engine) Decide(clock datemath.Clock, slots []schedule.Slot, text string, preExtracted []string) (d Decision) {
	defer e.recoverInto(&d)

	raws := e.extractor.Extract(text, preExtracted)
	suggestions := e.parser.ParseAll(raws, clock)
	sel := selectSlots(clock, slots, suggestions, e.minOverlap)

	return Decision{
		Result:        buildResult(sel, len(suggestions) > 0),
		Outcome:       sel.outcome,
		Slots:         slots,
		RawCandidates: raws,
		Suggestions:   suggestions,
	}
}

func (e *Engine) recoverInto(d *Decision) {
	if r := recover(); r != nil {
		*d = Decision{
			Result: schedule.MatchResult{
				AlternativeSlots: []string{},
				Message:          MessageAnalysisFailed,
			},
			Outcome: schedule.OutcomeFailed,
			Err:     fmt.Errorf("engine panic: %v", r),
		}
	}
}
