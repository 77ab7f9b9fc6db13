package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/datemath"
	"schedule-proposer/pkg/llmprovider"
)

// LLMGenerator is the slice of llmprovider.Manager the analysis step needs.
type LLMGenerator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

const (
	analysisTemperature = 0.1
	analysisMaxTokens   = 1024

	llmStatusOK    = "ok"
	llmStatusEmpty = "empty"
	llmStatusError = "error"
)

var (
	errEmptyAnalysis = errors.New("empty analysis response")
	candidateTag     = regexp.MustCompile(`(?s)<candidate>(.*?)</candidate>`)
)

// analyze asks the LLM to summarize the message and list every date/time mention it
// proposes as <candidate> tags.
func (uc *implUseCase) analyze(ctx context.Context, clock datemath.Clock, text string) (schedule.AnalysisResult, error) {
	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: analysisSystemPrompt}},
		},
		Messages: []llmprovider.Message{{
			Role:  "user",
			Parts: []llmprovider.Part{{Text: buildAnalysisPrompt(clock, text)}},
		}},
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	}

	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		uc.metrics.ObserveLLMAnalysis(llmStatusError)
		return schedule.AnalysisResult{}, fmt.Errorf("analyze: %w", err)
	}

	content := strings.TrimSpace(responseText(resp))
	if content == "" {
		uc.metrics.ObserveLLMAnalysis(llmStatusEmpty)
		return schedule.AnalysisResult{}, errEmptyAnalysis
	}

	res := parseAnalysis(content)
	uc.metrics.ObserveLLMAnalysis(llmStatusOK)
	uc.l.Debugf(ctx, "schedule.usecase.analyze: %d candidates from LLM", len(res.Candidates))
	return res, nil
}

// parseAnalysis splits an LLM answer into the tagged candidates and the remaining
// free-text summary.
func parseAnalysis(content string) schedule.AnalysisResult {
	var candidates []string
	for _, m := range candidateTag.FindAllStringSubmatch(content, -1) {
		if c := strings.TrimSpace(m[1]); c != "" {
			candidates = append(candidates, c)
		}
	}
	return schedule.AnalysisResult{
		Summary:    strings.TrimSpace(candidateTag.ReplaceAllString(content, "")),
		Candidates: candidates,
	}
}

func responseText(resp *llmprovider.Response) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
