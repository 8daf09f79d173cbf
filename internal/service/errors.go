package service

import (
	"errors"
	"fmt"
)

var (
	// ErrPasteNotFound is returned for unknown identifiers and for expired
	// pastes alike; callers cannot tell the two apart.
	ErrPasteNotFound = errors.New("paste not found")
	// ErrIDExhausted is wrapped when every identifier attempt collided.
	ErrIDExhausted = errors.New("identifier attempts exhausted")
)

// ValidationReason says which content rule was violated.
type ValidationReason int

const (
	ReasonEmpty ValidationReason = iota + 1
	ReasonTooLarge
)

// ValidationError reports bad paste content. It is never retryable.
type ValidationError struct {
	Reason ValidationReason
	// Max is the configured character limit, set for ReasonTooLarge.
	Max int
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "content is required"
	case ReasonTooLarge:
		return fmt.Sprintf("content exceeds %d characters", e.Max)
	default:
		return "invalid content"
	}
}

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Retryable reports whether the caller may retry the whole request.
// Exhausted identifier attempts are retryable too: a new request draws new identifiers.
func (e *PersistenceError) Retryable() bool { return true }

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
