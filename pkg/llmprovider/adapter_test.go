package llmprovider

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

type mockGeminiClient struct {
	lastReq *gemini.Request
	resp    *gemini.Response
	err     error
}

func (m *mockGeminiClient) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	m.lastReq = req
	return m.resp, m.err
}

func (m *mockGeminiClient) Model() string { return "gemini-test" }

func TestGeminiAdapter(t *testing.T) {
	client := &mockGeminiClient{resp: &gemini.Response{
		Content: gemini.Content{Role: "model", Parts: []gemini.Part{{Text: "answer"}}},
		Usage:   &gemini.Usage{InputTokens: 3, OutputTokens: 2, TotalTokens: 5},
	}}
	a := NewGeminiAdapter(client)

	resp, err := a.GenerateContent(context.Background(), &Request{
		SystemInstruction: &Message{Role: "system", Parts: []Part{{Text: "sys"}}},
		Messages: []Message{
			{Role: "user", Parts: []Part{{Text: "q"}}},
			{Role: "assistant", Parts: []Part{{Text: "a"}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "answer", resp.Content.Text())
	assert.Equal(t, "gemini", resp.ProviderName)
	assert.Equal(t, 5, resp.Usage.TotalTokens)
	assert.Equal(t, "sys", client.lastReq.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "model", client.lastReq.Messages[1].Role)

	client.err = errors.New("boom")
	_, err = a.GenerateContent(context.Background(), &Request{Messages: []Message{{Role: "user"}}})
	assert.Error(t, err)
}

func TestOpenAIAdapter(t *testing.T) {
	var gotMessages []map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body struct {
			Model    string           `json:"model"`
			Messages []map[string]any `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotMessages = body.Messages
		if body.Model == "fail-model" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "<candidate>5月10日 19:00-20:00</candidate>"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 7, "completion_tokens": 4, "total_tokens": 11}
		}`))
	}))
	defer ts.Close()

	a := NewOpenAIAdapter("deepseek", "key", ts.URL, "deepseek-chat")
	assert.Equal(t, "deepseek", a.Name())
	assert.Equal(t, "deepseek-chat", a.Model())

	resp, err := a.GenerateContent(context.Background(), &Request{
		SystemInstruction: &Message{Parts: []Part{{Text: "sys"}}},
		Messages:          []Message{{Role: "user", Parts: []Part{{Text: "q"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "<candidate>5月10日 19:00-20:00</candidate>", resp.Content.Text())
	assert.Equal(t, 11, resp.Usage.TotalTokens)
	require.Len(t, gotMessages, 2)
	assert.Equal(t, "system", gotMessages[0]["role"])

	failing := NewOpenAIAdapter("openai", "key", ts.URL, "fail-model")
	_, err = failing.GenerateContent(context.Background(), &Request{Messages: []Message{{Role: "user", Parts: []Part{{Text: "q"}}}}})
	assert.Error(t, err)
}
