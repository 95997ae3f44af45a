package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// retryable reports whether a failed call may succeed if repeated: no
// response at all, or a server-side error. Undecodable bodies are final.
func retryable(err error) bool {
	if errors.Is(err, ErrMalformedResponse) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}

// retry calls fn up to attempts times, doubling the pause from base after
// each retryable failure.
func retry(ctx context.Context, attempts int, base time.Duration, log *zap.Logger, fn func() error) error {
	delay := base
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || attempt >= attempts || ctx.Err() != nil || !retryable(err) {
			return err
		}

		log.Warn("request failed, retrying",
			zap.Error(err),
			zap.Int("attemptsLeft", attempts-attempt),
			zap.Duration("delay", delay),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return err
		}
		delay *= 2
	}
}
