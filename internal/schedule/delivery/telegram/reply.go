package telegram

import (
	"fmt"
	"strings"

	"schedule-proposer/internal/schedule"
)

const (
	replySelectedLabel       = "候補: "
	replyAlternativesHeading = "その他の候補:"
	replyDegradedNote        = "※カレンダーを確認できなかったため、仮の候補を表示しています。"

	messageHelp = "日程調整アシスタントです。\n\n" +
		"先方から届いた日程の候補をそのまま送ってください。カレンダーの空き状況と照らし合わせて、最適な日時をお返しします。\n\n" +
		"例: 5月10日(金) 20:30-21:30 または 5月13日の19時からはいかがでしょうか"
	messageProcessingFailed = "日程の確認中にエラーが発生しました。しばらくしてから再度お試しください。"
)

// formatReply renders a result for the chat: the message, the selected slot and the
// numbered alternatives.
func formatReply(r schedule.MatchResult, degraded bool) string {
	var b strings.Builder
	b.WriteString(r.Message)
	if r.SelectedSlot != "" {
		b.WriteString("\n\n")
		b.WriteString(replySelectedLabel)
		b.WriteString(r.SelectedSlot)
	}
	if len(r.AlternativeSlots) > 0 {
		b.WriteString("\n")
		b.WriteString(replyAlternativesHeading)
		for i, alt := range r.AlternativeSlots {
			fmt.Fprintf(&b, "\n%d. %s", i+1, alt)
		}
	}
	if degraded {
		b.WriteString("\n\n")
		b.WriteString(replyDegradedNote)
	}
	return b.String()
}
