package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"schedule-proposer/pkg/gemini"
)

var (
	ErrAllProvidersFailed    = errors.New("all providers failed")
	ErrNoProvidersConfigured = errors.New("no providers configured")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrProviderTimeout       = errors.New("provider timeout")
	ErrProviderRateLimited   = errors.New("provider rate limited")
	// ErrContentBlocked means the provider refused the message; retrying the same text is
	// pointless but another provider may accept it.
	ErrContentBlocked = errors.New("content blocked by provider")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// classify maps client errors of the concrete SDKs onto the package sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gemini.ErrBlocked) {
		return fmt.Errorf("%w: %v", ErrContentBlocked, err)
	}
	if statusCode(err) == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrProviderRateLimited, err)
	}
	return err
}

// retryable reports whether calling the same provider again can succeed. Rate limits,
// blocked content, cancelled contexts and other 4xx answers move on to the next provider.
func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrProviderRateLimited),
		errors.Is(err, ErrContentBlocked),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	code := statusCode(err)
	return code == 0 || code >= http.StatusInternalServerError
}

func statusCode(err error) int {
	var gErr *gemini.APIError
	if errors.As(err, &gErr) {
		return gErr.StatusCode
	}
	var oErr *openai.APIError
	if errors.As(err, &oErr) {
		return oErr.HTTPStatusCode
	}
	var rErr *openai.RequestError
	if errors.As(err, &rErr) {
		return rErr.HTTPStatusCode
	}
	return 0
}
