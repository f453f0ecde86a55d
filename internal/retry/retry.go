// Package retry provides a retry mechanism with exponential backoff for
// channel send operations.
package retry

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	defaultMaxAttempts  = 3
	defaultInitialDelay = 1 * time.Second
	defaultMaxDelay     = 10 * time.Second
)

// Config represents retry configuration.
type Config struct {
	MaxAttempts    int           // Maximum number of attempts (default: 3)
	InitialBackoff time.Duration // Initial backoff duration (default: 1s)
	MaxBackoff     time.Duration // Maximum backoff duration (default: 10s)
}

// Do executes the given function with retry logic. It returns nil on the
// first success or the last error if all attempts fail. Context
// cancellation is checked between attempts and during backoff.
func Do(ctx context.Context, fn func() error, cfg Config) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialDelay
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = defaultMaxDelay
	}

	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return err
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		backoff := calculateBackoff(attempt, cfg.InitialBackoff, cfg.MaxBackoff)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", cfg.MaxAttempts, lastErr)
}

// IsRetryable checks if an error is retryable based on its message.
// Returns true for timeout, network, rate limit, and temporary errors.
// Returns false for authentication, bad request, not found, and context
// cancellation errors.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	errLower := strings.ToLower(err.Error())

	nonRetryablePatterns := []string{
		"401",              // Unauthorized
		"403",              // Forbidden
		"400",              // Bad Request
		"404",              // Not Found
		"context canceled", // Explicit cancellation
	}

	for _, pattern := range nonRetryablePatterns {
		if strings.Contains(errLower, pattern) {
			return false
		}
	}

	retryablePatterns := []string{
		"context deadline exceeded",
		"deadline exceeded",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary",
		"eof",
		"429", // Too Many Requests
		"too many requests",
		"rate limit",
		"500",
		"502",
		"503",
		"504",
		"connection",
		"network",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errLower, pattern) {
			return true
		}
	}

	return false
}

// calculateBackoff returns the backoff for a given attempt using
// exponential growth (2^attempt * initial), capped at max.
func calculateBackoff(attempt int, initial, max time.Duration) time.Duration {
	backoff := time.Duration(1<<uint(attempt)) * initial
	if backoff > max {
		return max
	}
	return backoff
}
