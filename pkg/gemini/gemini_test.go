package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-proposer/pkg/gemini"
)

func TestNew(t *testing.T) {
	_, err := gemini.New(gemini.Config{})
	require.Error(t, err)

	client, err := gemini.New(gemini.Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, gemini.DefaultModel, client.Model())
}

type wireRequest struct {
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"system_instruction"`
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig *struct {
		Temperature   float64  `json:"temperature"`
		StopSequences []string `json:"stopSequences"`
	} `json:"generationConfig"`
}

func TestGenerateContent(t *testing.T) {
	var got wireRequest
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		switch got.Contents[0].Parts[0].Text {
		case "cause_500":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		case "blocked_prompt":
			w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
		case "blocked_candidate":
			w.Write([]byte(`{"candidates":[{"content":{"parts":[]},"finishReason":"SAFETY"}]}`))
		default:
			w.Write([]byte(`{
				"candidates": [
					{ "content": { "parts": [ { "text": "<candidate>" }, { "text": "5月10日</candidate>" } ], "role": "model" }, "finishReason": "STOP" }
				],
				"usageMetadata": { "promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15 }
			}`))
		}
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", APIURL: ts.URL, HTTPClient: ts.Client()})
	require.NoError(t, err)

	request := func(text string) *gemini.Request {
		return &gemini.Request{
			SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: "system"}}},
			Messages:          []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: text}}}},
			Temperature:       0.1,
			StopSequences:     []string{"END"},
		}
	}

	t.Run("success", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), request("5月10日はいかがですか"))
		require.NoError(t, err)
		assert.Equal(t, "<candidate>5月10日</candidate>", resp.Text())
		assert.Equal(t, "STOP", resp.FinishReason)
		assert.Equal(t, 15, resp.Usage.TotalTokens)

		assert.Equal(t, "/models/"+gemini.DefaultModel+":generateContent", gotPath)
		require.NotNil(t, got.SystemInstruction)
		assert.Equal(t, "system", got.SystemInstruction.Parts[0].Text)
		require.NotNil(t, got.GenerationConfig)
		assert.Equal(t, []string{"END"}, got.GenerationConfig.StopSequences)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), request("cause_500"))
		var apiErr *gemini.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "boom")
	})

	t.Run("blocked prompt", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), request("blocked_prompt"))
		assert.ErrorIs(t, err, gemini.ErrBlocked)
	})

	t.Run("blocked candidate", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), request("blocked_candidate"))
		assert.ErrorIs(t, err, gemini.ErrBlocked)
	})

	t.Run("wrong key", func(t *testing.T) {
		bad, err := gemini.New(gemini.Config{APIKey: "other", APIURL: ts.URL, HTTPClient: ts.Client()})
		require.NoError(t, err)
		_, err = bad.GenerateContent(context.Background(), request("hello"))
		var apiErr *gemini.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}
