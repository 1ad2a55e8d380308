package domain

import (
	"context"
	"errors"
	"fmt"
)

// ModelClient is the port to a generative text service. Generate returns
// the raw response text without interpreting it; failures are classified
// into the error values below so callers can branch without string checks.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrModelUnconfigured means the client was never given credentials.
// No network call is attempted.
var ErrModelUnconfigured = errors.New("model client is not configured")

// ErrEmptyResponse means the call succeeded but returned no candidate text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// ContentBlockedError means a safety filter rejected the call.
type ContentBlockedError struct {
	Reason string
}

func (e *ContentBlockedError) Error() string {
	return fmt.Sprintf("model blocked the request: %s", e.Reason)
}

// TransportError wraps a network or timeout failure. It is the only
// failure class eligible for a retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err may be retried once.
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
