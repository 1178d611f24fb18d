package sync

import (
	"context"
	"errors"
	"time"

	"github.com/lifegame-app/lifegame/internal/domain"
)

// RetryConfig controls push retry behavior.
type RetryConfig struct {
	MaxAttempts int           // Total tries including the first
	BaseDelay   time.Duration // Initial backoff delay (doubles each retry)
	MaxDelay    time.Duration // Cap on backoff delay
}

// DefaultRetryConfig returns the push retry defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   1 * time.Second,
		MaxDelay:    60 * time.Second,
	}
}

// Retry runs fn with exponential backoff until it succeeds, the attempts
// are exhausted, or the context is cancelled. Auth errors abort
// immediately: retrying a bad password never helps.
func Retry(ctx context.Context, cfg RetryConfig, fn func(context.Context) error) error {
	delay := cfg.BaseDelay

	var err error
	for attempt := 1; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) || attempt >= cfg.MaxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}

func retryable(err error) bool {
	return !errors.Is(err, domain.ErrInvalidCredentials) &&
		!errors.Is(err, domain.ErrUserExists)
}
