package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	name       string
	shouldFail bool
	err        error
	delay      time.Duration
	callCount  int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.shouldFail {
		return nil, errors.New("mock provider error")
	}
	return &Response{
		Content:      Message{Role: "assistant", Parts: []Part{{Text: "hello from " + m.name}}},
		ProviderName: m.name,
		ModelName:    m.name + "-model",
		Usage:        &Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.name + "-model" }

type mockLogger struct {
	infos int
	warns int
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     { m.infos++ }
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   { m.infos++ }
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     { m.warns++ }
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   { m.warns++ }
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func userRequest(text string) *Request {
	return &Request{Messages: []Message{{Role: "user", Parts: []Part{{Text: text}}}}}
}

func TestGenerateContent(t *testing.T) {
	t.Run("primary succeeds", func(t *testing.T) {
		primary := &mockProvider{name: "primary"}
		logger := &mockLogger{}
		m := NewManager([]Provider{primary}, &Config{FallbackEnabled: true, RetryAttempts: 3}, logger)

		resp, err := m.GenerateContent(context.Background(), userRequest("hi"))
		require.NoError(t, err)
		assert.Equal(t, "primary", resp.ProviderName)
		assert.Equal(t, 1, primary.callCount)
		assert.Equal(t, 1, logger.infos)
		assert.Equal(t, 0, logger.warns)
	})

	t.Run("falls back after retries", func(t *testing.T) {
		primary := &mockProvider{name: "primary", shouldFail: true}
		secondary := &mockProvider{name: "secondary"}
		logger := &mockLogger{}
		m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond}, logger)

		resp, err := m.GenerateContent(context.Background(), userRequest("hi"))
		require.NoError(t, err)
		assert.Equal(t, "secondary", resp.ProviderName)
		assert.Equal(t, 2, primary.callCount)
		assert.Equal(t, 1, secondary.callCount)
		assert.Equal(t, 1, logger.warns)
	})

	t.Run("all providers fail", func(t *testing.T) {
		primary := &mockProvider{name: "primary", shouldFail: true}
		secondary := &mockProvider{name: "secondary", shouldFail: true}
		m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 2}, &mockLogger{})

		resp, err := m.GenerateContent(context.Background(), userRequest("hi"))
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrAllProvidersFailed)
		assert.Equal(t, 2, secondary.callCount)
	})

	t.Run("no fallback when disabled", func(t *testing.T) {
		primary := &mockProvider{name: "primary", shouldFail: true}
		secondary := &mockProvider{name: "secondary"}
		m := NewManager([]Provider{primary, secondary}, &Config{RetryAttempts: 1}, &mockLogger{})

		_, err := m.GenerateContent(context.Background(), userRequest("hi"))
		assert.Error(t, err)
		assert.Equal(t, 0, secondary.callCount)
	})

	t.Run("rate limit skips retries and falls back", func(t *testing.T) {
		primary := &mockProvider{name: "primary", err: ErrProviderRateLimited}
		secondary := &mockProvider{name: "secondary"}
		m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 3}, &mockLogger{})

		resp, err := m.GenerateContent(context.Background(), userRequest("hi"))
		require.NoError(t, err)
		assert.Equal(t, "secondary", resp.ProviderName)
		assert.Equal(t, 1, primary.callCount)
	})

	t.Run("zero retry attempts still calls once", func(t *testing.T) {
		primary := &mockProvider{name: "primary"}
		m := NewManager([]Provider{primary}, &Config{}, &mockLogger{})

		_, err := m.GenerateContent(context.Background(), userRequest("hi"))
		require.NoError(t, err)
		assert.Equal(t, 1, primary.callCount)
	})

	t.Run("global timeout stops the chain", func(t *testing.T) {
		slow := &mockProvider{name: "slow", delay: time.Second}
		next := &mockProvider{name: "next"}
		m := NewManager([]Provider{slow, next}, &Config{FallbackEnabled: true, RetryAttempts: 1, MaxTotalTimeout: 20 * time.Millisecond}, &mockLogger{})

		_, err := m.GenerateContent(context.Background(), userRequest("hi"))
		assert.Error(t, err)
		assert.Equal(t, 0, next.callCount)
	})

	t.Run("no providers", func(t *testing.T) {
		m := NewManager(nil, &Config{}, &mockLogger{})
		_, err := m.GenerateContent(context.Background(), userRequest("hi"))
		assert.ErrorIs(t, err, ErrNoProvidersConfigured)
	})

	t.Run("empty request", func(t *testing.T) {
		m := NewManager([]Provider{&mockProvider{name: "p"}}, &Config{}, &mockLogger{})
		_, err := m.GenerateContent(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}
