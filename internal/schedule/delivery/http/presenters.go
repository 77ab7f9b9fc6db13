package http

import (
	"strings"
	"time"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/response"
)

// --- Request DTOs ---

type proposeReq struct {
	Text         string   `json:"text"          binding:"max=20000"`
	Candidates   []string `json:"candidates"    binding:"max=20,dive,max=200"`
	SkipAnalysis bool     `json:"skip_analysis"`
}

func (r proposeReq) validate() error {
	if strings.TrimSpace(r.Text) != "" {
		return nil
	}
	for _, c := range r.Candidates {
		if strings.TrimSpace(c) != "" {
			return nil
		}
	}
	return schedule.ErrEmptyInput
}

func (r proposeReq) toInput() schedule.ProposeInput {
	return schedule.ProposeInput{
		Text:         r.Text,
		Candidates:   r.Candidates,
		SkipAnalysis: r.SkipAnalysis,
	}
}

// --- Response DTOs ---

type proposeResp struct {
	schedule.MatchResult
	Outcome     string            `json:"outcome"`
	Suggestions []string          `json:"suggestions"`
	SlotCount   int               `json:"slot_count"`
	Degraded    bool              `json:"degraded"`
	GeneratedAt response.DateTime `json:"generated_at"`
}

func (h *handler) newProposeResp(out schedule.ProposeOutput, now time.Time) proposeResp {
	suggestions := out.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return proposeResp{
		MatchResult: out.Result,
		Outcome:     string(out.Outcome),
		Suggestions: suggestions,
		SlotCount:   out.SlotCount,
		Degraded:    out.Degraded,
		GeneratedAt: response.DateTime(now),
	}
}

type slotsResp struct {
	Slots    []string `json:"slots"`
	Count    int      `json:"count"`
	Degraded bool     `json:"degraded"`
}

func (h *handler) newSlotsResp(out schedule.AvailableSlotsOutput) slotsResp {
	slots := out.Slots
	if slots == nil {
		slots = []string{}
	}
	return slotsResp{
		Slots:    slots,
		Count:    len(slots),
		Degraded: out.Degraded,
	}
}
