package domain

import "errors"

// Business-rule errors are deterministic: retrying the same request cannot
// change the outcome, so callers must not retry them.
var (
	ErrInvalidRange      = errors.New("start date must be before end date")
	ErrOverlap           = errors.New("dates overlap an active booking")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNotFound          = errors.New("not found")
)
