package schedule

import "errors"

// Domain-specific errors for the schedule package.
var (
	ErrEmptyInput    = errors.New("input text is empty")
	ErrInvalidPolicy = errors.New("invalid working hours policy")
	ErrNoBusySource  = errors.New("busy source is not configured")
)
