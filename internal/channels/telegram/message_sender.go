package telegram

import (
	"context"
	"errors"
	"time"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoapi"
	"golang.org/x/time/rate"

	"github.com/dripfeedbot/dripfeed/internal/channels"
	"github.com/dripfeedbot/dripfeed/internal/logger"
	"github.com/dripfeedbot/dripfeed/internal/retry"
)

// MessageSender delivers text messages to Telegram chats. All sends go
// through a shared rate limiter so paste lines and command replies
// cannot trip Telegram's flood control, and transient API failures are
// retried with backoff.
type MessageSender struct {
	bot         BotInterface
	logger      *logger.Logger
	limiter     *rate.Limiter
	sendTimeout time.Duration
}

// NewMessageSender creates a sender limited to messagesPerSecond with
// the given burst. Each individual API call is bounded by sendTimeout.
func NewMessageSender(bot BotInterface, log *logger.Logger, messagesPerSecond float64, burst int, sendTimeout time.Duration) *MessageSender {
	if messagesPerSecond <= 0 {
		messagesPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &MessageSender{
		bot:         bot,
		logger:      log,
		limiter:     rate.NewLimiter(rate.Limit(messagesPerSecond), burst),
		sendTimeout: sendTimeout,
	}
}

// Send delivers text to chatID, waiting for the rate limiter first.
func (s *MessageSender) Send(ctx context.Context, chatID int64, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	attempt := func() error {
		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()

		_, err := s.bot.SendMessage(sendCtx, &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: chatID},
			Text:   text,
		})
		if err == nil {
			return nil
		}

		if details := describeSendError(err, chatID, text); details != nil {
			s.logger.WarnCtx(ctx, "telegram send failed", details.LogFields()...)

			// Honor Telegram's own flood-control delay before the
			// generic backoff kicks in.
			if wait := details.RetryAfter(); wait > 0 && details.IsRetryable() {
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}

		return err
	}

	return retry.Do(ctx, attempt, retry.Config{
		MaxAttempts:    3,
		InitialBackoff: time.Second,
		MaxBackoff:     10 * time.Second,
	})
}

// describeSendError maps a telego API error to channel error details.
// Returns nil for non-API errors (network failures, timeouts).
func describeSendError(err error, chatID int64, text string) channels.ErrorDetails {
	var telErr *telegoapi.Error
	if !errors.As(err, &telErr) {
		return nil
	}

	details := &channels.TelegramErrorDetails{
		ErrorCode:       telErr.ErrorCode,
		Description:     telErr.Description,
		OriginalMessage: text,
		ChatID:          chatID,
		Timestamp:       time.Now(),
	}
	if telErr.Parameters != nil {
		details.RetryAfterSec = telErr.Parameters.RetryAfter
	}
	return details
}
