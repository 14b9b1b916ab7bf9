package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	fgerrors "github.com/matzehuels/flowergraph/pkg/errors"
)

// Sentinel errors for caching operations.
var (
	// ErrNetwork is returned when a remote backend (Redis, MongoDB) is unreachable.
	ErrNetwork = errors.New("network error")

	// ErrUnsupportedURL is returned by Open for an unknown cache URL scheme.
	ErrUnsupportedURL = errors.New("unsupported cache URL")
)

// unreachable reports a failed round trip to a remote backend as a retryable
// NETWORK_ERROR, or TIMEOUT when a deadline passed.
func unreachable(backend string, timeout bool, err error) error {
	code := fgerrors.ErrCodeNetwork
	if timeout {
		code = fgerrors.ErrCodeTimeout
	}
	return Retryable(fgerrors.Wrap(code, fmt.Errorf("%w: %v", ErrNetwork, err), "%s unreachable", backend))
}

// RetryableError marks a backend error as transient.
type RetryableError struct{ Err error }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries transient backend errors with doubling delays.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used by the remote backends. A cache that is down should
// cost a render a fraction of a second, not several.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Retry calls fn until it succeeds, returns an error not marked with
// [Retryable], or runs out of attempts.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for i := range max(b.Attempts, 1) {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == b.Attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// RetryWithBackoff retries fn with [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
