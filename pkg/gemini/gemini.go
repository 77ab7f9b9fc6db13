package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	apiKeyHeader       = "x-goog-api-key"
	finishReasonSafety = "SAFETY"
	maxErrorBody       = 4 << 10
)

func (c *implClient) Model() string {
	return c.model
}

// GenerateContent calls models/{model}:generateContent and returns the first candidate.
// A blocked prompt or a candidate stopped for safety yields ErrBlocked.
func (c *implClient) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(toAPIRequest(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.apiURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	return fromAPIResponse(&out)
}

func toAPIRequest(req *Request) apiRequest {
	out := apiRequest{Contents: make([]apiContent, len(req.Messages))}
	if req.SystemInstruction != nil {
		out.SystemInstruction = &apiContent{Parts: toAPIParts(req.SystemInstruction.Parts)}
	}
	for i, msg := range req.Messages {
		out.Contents[i] = apiContent{Role: msg.Role, Parts: toAPIParts(msg.Parts)}
	}
	if req.Temperature > 0 || req.MaxTokens > 0 || len(req.StopSequences) > 0 {
		out.GenerationConfig = &apiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
			StopSequences:   req.StopSequences,
		}
	}
	return out
}

func toAPIParts(parts []Part) []apiPart {
	out := make([]apiPart, len(parts))
	for i, p := range parts {
		out[i] = apiPart{Text: p.Text}
	}
	return out
}

func fromAPIResponse(resp *apiResponse) (*Response, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt %s", ErrBlocked, resp.PromptFeedback.BlockReason)
	}

	usage := &Usage{}
	if resp.UsageMetadata != nil {
		usage.InputTokens = resp.UsageMetadata.PromptTokenCount
		usage.OutputTokens = resp.UsageMetadata.CandidatesTokenCount
		usage.TotalTokens = resp.UsageMetadata.TotalTokenCount
	}
	if len(resp.Candidates) == 0 {
		return &Response{Usage: usage}, nil
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == finishReasonSafety {
		return nil, fmt.Errorf("%w: candidate stopped for %s", ErrBlocked, cand.FinishReason)
	}

	parts := make([]Part, len(cand.Content.Parts))
	for i, p := range cand.Content.Parts {
		parts[i] = Part{Text: p.Text}
	}
	return &Response{
		Content:      Content{Role: cand.Content.Role, Parts: parts},
		FinishReason: cand.FinishReason,
		Usage:        usage,
	}, nil
}
