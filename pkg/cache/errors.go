package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable marks a Redis command or connection that failed. The
	// Redis backend always returns it wrapped in Retryable.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrCacheDir is returned when the file cache directory cannot be
	// created.
	ErrCacheDir = errors.New("cache directory unusable")
)

// Retry schedule for transient backend failures. A Redis reconnect is
// cheap, so the window stays well below an HTTP request timeout.
const (
	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
)

// RetryableError marks a backend failure worth retrying.
type RetryableError struct{ Err error }

// Retryable wraps err so RetryWithBackoff retries it. nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an error that is
// not retryable, or the attempts run out. The delay doubles after each
// failure; cancelling ctx stops the wait.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			delay *= 2
		}
	}
}
