package gemini

import (
	"errors"
	"fmt"
)

// ErrBlocked is returned when Gemini refuses the prompt or stops a candidate for safety.
var ErrBlocked = errors.New("gemini: content blocked")

// APIError is a non-200 answer of the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Body)
}
