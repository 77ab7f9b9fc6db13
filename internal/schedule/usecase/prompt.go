package usecase

import (
	"fmt"

	"schedule-proposer/pkg/datemath"
)

// analysisSystemPrompt is the system instruction for the schedule analysis step.
const analysisSystemPrompt = `あなたは日程調整アシスタントです。受信したメッセージを読み、次の形式で回答してください。

RULES:
1. 最初にメッセージの要旨を日本語で1〜3文にまとめる。
2. 相手が提案している日時を、1件ごとに <candidate>…</candidate> タグで囲んで列挙する。
3. 日時は「M月D日(曜) HH:MM-HH:MM」の形式で書く。時刻がなければ「M月D日(曜)」だけを書く。
4. 相対表現（明日、来週火曜など）は CURRENT DATE を基準に具体的な日付に直す。
5. 日時の提案がなければタグは出力しない。

EXAMPLE OUTPUT:
来週の打ち合わせ日程について、2つの候補が提示されています。
<candidate>5月10日(金) 19:00-20:00</candidate>
<candidate>5月13日(月)</candidate>`

// buildAnalysisPrompt builds the user prompt for the analysis step.
func buildAnalysisPrompt(clock datemath.Clock, text string) string {
	now := clock.Now()
	return fmt.Sprintf("CURRENT DATE: %d年%d月%d日(%s)\n\nMESSAGE:\n%s",
		now.Year(), int(now.Month()), now.Day(), datemath.WeekdayKanji(now), text)
}
