package usecase

import (
	"context"
	"strings"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/datemath"
)

// Propose runs one proposal: fetch busy intervals, optionally analyze the text with the
// LLM, then match. Calendar and LLM failures degrade instead of failing.
func (uc *implUseCase) Propose(ctx context.Context, input schedule.ProposeInput) (schedule.ProposeOutput, error) {
	text := strings.TrimSpace(input.Text)
	candidates := nonBlank(input.Candidates)
	if text == "" && len(candidates) == 0 {
		return schedule.ProposeOutput{}, schedule.ErrEmptyInput
	}

	clock := uc.parser.Clock(uc.now())
	slots, degraded := uc.loadSlots(ctx, clock)

	analysisText := text
	if len(candidates) == 0 && !input.SkipAnalysis && uc.llm != nil {
		res, err := uc.analyze(ctx, clock, text)
		if err != nil {
			uc.l.Warnf(ctx, "schedule.usecase.Propose: LLM analysis failed, using pattern extraction: %v", err)
		} else {
			candidates = res.Candidates
			if res.Summary != "" {
				analysisText = text + "\n" + res.Summary
			}
		}
	}

	d := uc.engine.Decide(clock, slots, analysisText, candidates)
	if d.Err != nil {
		uc.l.Errorf(ctx, "schedule.usecase.Propose: %v", d.Err)
	}
	uc.l.Debugf(ctx, "schedule.usecase.Propose: %d raw candidates, %d suggestions, %d slots", len(d.RawCandidates), len(d.Suggestions), len(slots))

	uc.metrics.ObserveProposal(string(d.Outcome))
	uc.metrics.ObserveSuggestions(len(d.Suggestions))

	suggestions := make([]string, 0, len(d.Suggestions))
	for _, s := range d.Suggestions {
		suggestions = append(suggestions, StripYear(FormatSuggestion(s)))
	}

	uc.l.Infof(ctx, "schedule.usecase.Propose: outcome=%s selected=%q alternatives=%d degraded=%t",
		d.Outcome, d.Result.SelectedSlot, len(d.Result.AlternativeSlots), degraded)

	return schedule.ProposeOutput{
		Result:      d.Result,
		Outcome:     d.Outcome,
		Suggestions: suggestions,
		SlotCount:   len(slots),
		Degraded:    degraded,
	}, nil
}

// AvailableSlots lists every free slot inside the horizon, year-stripped.
func (uc *implUseCase) AvailableSlots(ctx context.Context) (schedule.AvailableSlotsOutput, error) {
	clock := uc.parser.Clock(uc.now())
	slots, degraded := uc.loadSlots(ctx, clock)

	out := schedule.AvailableSlotsOutput{
		Slots:    make([]string, 0, len(slots)),
		Degraded: degraded,
	}
	for _, slot := range slots {
		out.Slots = append(out.Slots, StripYear(FormatSlot(slot)))
	}
	return out, nil
}

// loadSlots fetches a fresh busy snapshot and generates slots from it. A calendar failure
// is answered with the placeholder slots and reported as degraded.
func (uc *implUseCase) loadSlots(ctx context.Context, clock datemath.Clock) ([]schedule.Slot, bool) {
	if uc.busy == nil {
		return GenerateSlots(clock, uc.policy, nil), false
	}

	ctx, cancel := context.WithTimeout(ctx, uc.calendarTimeout)
	defer cancel()

	from := clock.Today()
	to := from.AddDate(0, 0, uc.policy.HorizonDays)
	busy, err := uc.busy.ListBusy(ctx, from, to, uc.policy)
	if err != nil {
		uc.l.Warnf(ctx, "schedule.usecase.loadSlots: calendar unavailable, using fallback slots: %v", err)
		uc.metrics.ObserveCalendarFallback()
		return FallbackSlots(clock, uc.policy), true
	}

	uc.l.Debugf(ctx, "schedule.usecase.loadSlots: %d busy intervals", len(busy))
	return GenerateSlots(clock, uc.policy, busy), false
}

// IsScheduleRelated reports whether subject or body mention any configured keyword.
func (uc *implUseCase) IsScheduleRelated(subject, body string) bool {
	content := strings.ToLower(subject + " " + body)
	for _, k := range uc.keywords {
		if strings.Contains(content, k) {
			return true
		}
	}
	return false
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
