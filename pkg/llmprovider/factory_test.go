package llmprovider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-proposer/config"
)

func TestInitializeProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "openai", Enabled: true, Priority: 3, APIKey: "k", Model: "gpt-4o-mini"},
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k", Model: "gemini-2.5-flash"},
			{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "k", Model: "deepseek-chat"},
			{Name: "gemini", Enabled: false, Priority: 0, APIKey: "k", Model: "disabled"},
			{Name: "unknown", Enabled: true, Priority: 4, APIKey: "k", Model: "m"},
			{Name: "openai", Enabled: true, Priority: 5, Model: "missing-key"},
			{Name: "claude", Enabled: true, Priority: 6, APIKey: "k", Model: "claude-3-5-haiku-latest"},
		},
	}
	logger := &mockLogger{}

	providers, err := InitializeProviders(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.Len(t, providers, 4)
	assert.Equal(t, "gemini", providers[0].Name())
	assert.Equal(t, "deepseek", providers[1].Name())
	assert.Equal(t, "openai", providers[2].Name())
	assert.Equal(t, "claude", providers[3].Name())
	assert.Equal(t, 2, logger.warns)
}

func TestCreateProvider_CompatibleVendors(t *testing.T) {
	tests := map[string]struct {
		cfg         config.ProviderConfig
		wantBaseURL string
	}{
		"claude default endpoint": {
			cfg:         config.ProviderConfig{Name: "claude", APIKey: "k", Model: "claude-3-5-haiku-latest"},
			wantBaseURL: "https://api.anthropic.com/v1",
		},
		"deepseek default endpoint": {
			cfg:         config.ProviderConfig{Name: "deepseek", APIKey: "k", Model: "deepseek-chat"},
			wantBaseURL: "https://api.deepseek.com/v1",
		},
		"claude base url override": {
			cfg:         config.ProviderConfig{Name: "claude", APIKey: "k", Model: "m", BaseURL: "http://localhost:9000/v1"},
			wantBaseURL: "http://localhost:9000/v1",
		},
		"openai keeps sdk default": {
			cfg:         config.ProviderConfig{Name: "openai", APIKey: "k", Model: "gpt-4o-mini"},
			wantBaseURL: "https://api.openai.com/v1",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := createProvider(tt.cfg)
			require.NoError(t, err)

			adapter, ok := p.(*OpenAIAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.cfg.Name, adapter.Name())
			assert.Equal(t, tt.wantBaseURL, adapter.baseURL)
		})
	}
}

func TestInitializeProviders_Errors(t *testing.T) {
	_, err := InitializeProviders(context.Background(), nil, &mockLogger{})
	assert.Error(t, err)

	_, err = InitializeProviders(context.Background(), &config.LLMConfig{}, &mockLogger{})
	assert.ErrorIs(t, err, ErrNoProvidersConfigured)

	_, err = InitializeProviders(context.Background(), &config.LLMConfig{
		Providers: []config.ProviderConfig{{Name: "unknown", Enabled: true, APIKey: "k", Model: "m"}},
	}, &mockLogger{})
	assert.Error(t, err)
}

func TestNewManagerConfig(t *testing.T) {
	got := NewManagerConfig(&config.LLMConfig{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      "500ms",
		MaxTotalTimeout: "30s",
	})
	assert.True(t, got.FallbackEnabled)
	assert.Equal(t, 2, got.RetryAttempts)
	assert.Equal(t, 500*time.Millisecond, got.RetryDelay)
	assert.Equal(t, 30*time.Second, got.MaxTotalTimeout)
}
