package usecase

import (
	"fmt"
	"regexp"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/datemath"
)

// MessageAnalysisFailed is returned when the engine recovered from an internal failure.
const MessageAnalysisFailed = "analysis failed"

const (
	messageAccepted       = "ご提案いただいた日程 %s で調整可能です。"
	messageBestOfMany     = "ご提案いただいた候補のうち %s が最も都合の良い日程です。"
	messageNearestOffered = "ご提案の日程では調整が難しいため、近い日程として %s はいかがでしょうか。"
	messageNoSuggestion   = "具体的な日程が見つからなかったため、最も早い空き時間 %s をご提案します。"
	messageNoSlots        = "申し訳ありませんが、ご提案できる空き時間がありません。"
)

var yearPrefix = regexp.MustCompile(`\d{4}年\s*`)

// FormatSlot renders a slot as "2024年5月10日(金) 20:30-21:30".
func FormatSlot(slot schedule.Slot) string {
	return fmt.Sprintf("%d年%d月%d日(%s) %s-%s",
		slot.Start.Year(), int(slot.Start.Month()), slot.Start.Day(),
		datemath.WeekdayKanji(slot.Start),
		slot.Start.Format("15:04"), slot.End.Format("15:04"),
	)
}

// FormatSuggestion renders a parsed suggestion the same way as a slot, without the time
// when the suggestion carries only a date.
func FormatSuggestion(s datemath.Suggestion) string {
	date := fmt.Sprintf("%d年%d月%d日(%s)", s.Year, s.Month, s.Day, datemath.WeekdayKanji(s.Date))
	if !s.HasTime {
		return date
	}
	return date + " " + s.Start.Format("15:04") + "-" + s.End.Format("15:04")
}

// StripYear removes every "YYYY年" from text.
func StripYear(text string) string {
	return yearPrefix.ReplaceAllString(text, "")
}

// buildResult formats a selection into the externally visible result. Every string is
// year-stripped.
func buildResult(sel selection, hadSuggestions bool) schedule.MatchResult {
	result := schedule.MatchResult{
		HasMatch:         sel.outcome == schedule.OutcomeAccepted || sel.outcome == schedule.OutcomeBestOfMany,
		AlternativeSlots: make([]string, 0, len(sel.alternatives)),
	}

	selected := ""
	if sel.selected != nil {
		selected = FormatSlot(*sel.selected)
		result.SelectedSlot = StripYear(selected)
	}
	for _, alt := range sel.alternatives {
		result.AlternativeSlots = append(result.AlternativeSlots, StripYear(FormatSlot(alt)))
	}

	result.Message = StripYear(message(sel.outcome, selected, hadSuggestions))
	return result
}

func message(outcome schedule.Outcome, selected string, hadSuggestions bool) string {
	switch outcome {
	case schedule.OutcomeAccepted:
		return fmt.Sprintf(messageAccepted, selected)
	case schedule.OutcomeBestOfMany:
		return fmt.Sprintf(messageBestOfMany, selected)
	case schedule.OutcomeNearestOffered:
		if hadSuggestions {
			return fmt.Sprintf(messageNearestOffered, selected)
		}
		return fmt.Sprintf(messageNoSuggestion, selected)
	case schedule.OutcomeNoSlots:
		return messageNoSlots
	default:
		return MessageAnalysisFailed
	}
}
