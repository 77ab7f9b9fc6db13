package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIBase = "https://api.telegram.org"
	defaultTimeout = 15 * time.Second

	// Bot API limits: ~30 messages per second overall, 4096 characters per message.
	sendsPerSecond = 30
	maxMessageLen  = 4096
	maxRetryAfter  = 30 * time.Second
)

// Bot is the Telegram Bot API client.
type Bot struct {
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Bot.
type Option func(*Bot)

// WithAPIURL replaces the bot endpoint, including the token path segment.
func WithAPIURL(url string) Option {
	return func(b *Bot) { b.apiURL = url }
}

func WithHTTPClient(c *http.Client) Option {
	return func(b *Bot) { b.httpClient = c }
}

// NewBot creates a Bot API client for token.
func NewBot(token string, opts ...Option) *Bot {
	b := &Bot{
		apiURL:     fmt.Sprintf("%s/bot%s", defaultAPIBase, token),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(sendsPerSecond), sendsPerSecond),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetWebhook registers the webhook URL with Telegram. A non-empty secret is echoed back by
// Telegram in SecretTokenHeader on every update.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	if err := b.call(ctx, "setWebhook", SetWebhookRequest{URL: webhookURL, SecretToken: secret}); err != nil {
		return fmt.Errorf("telegram.SetWebhook: %w", err)
	}
	return nil
}

// Send delivers a message. Text beyond the Bot API limit is cut. A 429 answer is retried
// once after the delay Telegram asks for.
func (b *Bot) Send(ctx context.Context, req SendMessageRequest) error {
	req.Text = truncate(req.Text, maxMessageLen)

	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram.Send: %w", err)
	}

	err := b.call(ctx, "sendMessage", req)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		wait := min(time.Duration(apiErr.RetryAfter)*time.Second, maxRetryAfter)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("telegram.Send: %w", ctx.Err())
		}
		err = b.call(ctx, "sendMessage", req)
	}
	if err != nil {
		return fmt.Errorf("telegram.Send: %w", err)
	}
	return nil
}

// call posts payload to a Bot API method. Any answer with ok=false becomes an *APIError.
func (b *Bot) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{Method: method, Code: resp.StatusCode, Description: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		apiErr := &APIError{Method: method, Code: apiResp.ErrorCode, Description: apiResp.Description}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
		}
		if apiResp.Parameters != nil {
			apiErr.RetryAfter = apiResp.Parameters.RetryAfter
		}
		return apiErr
	}
	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
