// Package channels defines shared types for channel connectors.
package channels

import (
	"time"

	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// ErrorDetails describes a channel send failure in enough detail to
// decide whether and when to retry it. Each channel type provides its
// own implementation.
type ErrorDetails interface {
	// Error returns the textual description of the failure.
	Error() string

	// IsRetryable reports whether the send may be retried.
	IsRetryable() bool

	// RetryAfter returns the delay to wait before retrying.
	RetryAfter() time.Duration

	// LogFields returns fields for structured logging.
	LogFields() []logger.Field
}

// TelegramErrorDetails describes a Telegram API error.
type TelegramErrorDetails struct {
	ErrorCode       int       // HTTP-style error code (400, 429, 403, ...)
	Description     string    // Description from the Telegram API
	RetryAfterSec   int       // Rate-limit delay in seconds, if any
	OriginalMessage string    // The message that triggered the error
	ChatID          int64     // Target chat
	Timestamp       time.Time // When the error was observed
}

func (d *TelegramErrorDetails) Error() string {
	return d.Description
}

// IsRetryable reports whether the send may be retried. Rate limiting
// (429) and server errors (5xx) are retryable.
func (d *TelegramErrorDetails) IsRetryable() bool {
	return d.ErrorCode == 429 || (d.ErrorCode >= 500 && d.ErrorCode < 600)
}

// RetryAfter returns the delay before retrying. Telegram's own
// retry_after parameter wins when present.
func (d *TelegramErrorDetails) RetryAfter() time.Duration {
	if d.RetryAfterSec > 0 {
		return time.Duration(d.RetryAfterSec) * time.Second
	}
	if d.ErrorCode >= 500 && d.ErrorCode < 600 {
		return 5 * time.Second
	}
	return 0
}

// LogFields returns fields for structured logging.
func (d *TelegramErrorDetails) LogFields() []logger.Field {
	return []logger.Field{
		{Key: "error_code", Value: d.ErrorCode},
		{Key: "error_description", Value: d.Description},
		{Key: "retry_after", Value: d.RetryAfterSec},
		{Key: "chat_id", Value: d.ChatID},
	}
}
