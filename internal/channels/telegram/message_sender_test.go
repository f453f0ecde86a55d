package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/mymmrac/telego/telegoapi"
)

func TestMessageSender_Send(t *testing.T) {
	bot := &mockBot{}
	sender := NewMessageSender(bot, testLogger(t), 100, 10, time.Second)

	if err := sender.Send(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	if len(bot.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(bot.sent))
	}
	if bot.sent[0].ChatID.ID != 42 {
		t.Errorf("chat ID = %d, want 42", bot.sent[0].ChatID.ID)
	}
	if bot.sent[0].Text != "hello" {
		t.Errorf("text = %q, want hello", bot.sent[0].Text)
	}
}

func TestMessageSender_NoRetryOnBadRequest(t *testing.T) {
	bot := &mockBot{
		sendErrs: []error{
			&telegoapi.Error{ErrorCode: 400, Description: "Bad Request: chat not found"},
		},
	}
	sender := NewMessageSender(bot, testLogger(t), 100, 10, time.Second)

	if err := sender.Send(context.Background(), 42, "hello"); err == nil {
		t.Fatal("Send() should fail on a bad request")
	}

	if len(bot.sent) != 1 {
		t.Errorf("bad requests must not be retried, got %d attempts", len(bot.sent))
	}
}

func TestMessageSender_RetriesRateLimit(t *testing.T) {
	bot := &mockBot{
		sendErrs: []error{
			&telegoapi.Error{ErrorCode: 429, Description: "Too Many Requests"},
			nil,
		},
	}
	sender := NewMessageSender(bot, testLogger(t), 100, 10, time.Second)

	if err := sender.Send(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("Send() should succeed after retry, got: %v", err)
	}

	if len(bot.sent) != 2 {
		t.Errorf("rate-limited send should be retried once, got %d attempts", len(bot.sent))
	}
}

func TestDescribeSendError(t *testing.T) {
	apiErr := &telegoapi.Error{
		ErrorCode:   429,
		Description: "Too Many Requests: retry after 7",
		Parameters:  &telegoapi.ResponseParameters{RetryAfter: 7},
	}

	details := describeSendError(apiErr, 42, "hello")
	if details == nil {
		t.Fatal("describeSendError() = nil for an API error")
	}

	if !details.IsRetryable() {
		t.Error("429 should be retryable")
	}
	if details.RetryAfter() != 7*time.Second {
		t.Errorf("RetryAfter() = %v, want 7s", details.RetryAfter())
	}

	if describeSendError(context.DeadlineExceeded, 42, "x") != nil {
		t.Error("non-API errors should map to nil details")
	}
}
