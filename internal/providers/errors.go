package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Failure kinds for upstream fetches. Concrete errors wrap exactly one of these.
// ErrResponse covers both non-2xx statuses and bodies that could not be read.
var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrTransport           = errors.New("transport failure")
	ErrResponse            = errors.New("unusable response")
	ErrSchema              = errors.New("unexpected payload")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// Wrap tags err with a failure kind while keeping the cause inspectable.
func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// StatusError captures a non-2xx response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrResponse }

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

func (e *RateLimitError) Unwrap() error { return ErrResponse }

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// Retryable reports whether another attempt could plausibly succeed.
// Malformed requests, schema mismatches, cancellation and client errors are final.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrSchema):
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.StatusCode
		return code >= http.StatusInternalServerError || code == http.StatusRequestTimeout
	}
	return true
}
