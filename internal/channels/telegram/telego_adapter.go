package telegram

import (
	"context"

	"github.com/mymmrac/telego"
)

// BotInterface defines the Telegram bot API methods used by the connector.
// This interface allows creating mock implementations for testing without
// depending on the concrete telego.Bot implementation.
type BotInterface interface {
	// GetMe returns basic information about the bot.
	GetMe(ctx context.Context) (*telego.User, error)

	// SendMessage sends a text message to a chat.
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)

	// SetMyCommands sets the bot's command list in the bot menu.
	SetMyCommands(ctx context.Context, params *telego.SetMyCommandsParams) error

	// UpdatesViaLongPolling starts long polling for Telegram updates.
	// Returns a channel that will receive updates as they arrive.
	UpdatesViaLongPolling(ctx context.Context, params *telego.GetUpdatesParams, opts ...telego.LongPollingOption) (<-chan telego.Update, error)
}

// telegoAdapter wraps telego.Bot to implement BotInterface.
type telegoAdapter struct {
	bot *telego.Bot
}

// NewBotAdapter creates a new BotInterface from a telego.Bot instance.
func NewBotAdapter(bot *telego.Bot) BotInterface {
	return &telegoAdapter{bot: bot}
}

func (a *telegoAdapter) GetMe(ctx context.Context) (*telego.User, error) {
	return a.bot.GetMe(ctx)
}

func (a *telegoAdapter) SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	return a.bot.SendMessage(ctx, params)
}

func (a *telegoAdapter) SetMyCommands(ctx context.Context, params *telego.SetMyCommandsParams) error {
	return a.bot.SetMyCommands(ctx, params)
}

func (a *telegoAdapter) UpdatesViaLongPolling(ctx context.Context, params *telego.GetUpdatesParams, opts ...telego.LongPollingOption) (<-chan telego.Update, error) {
	return a.bot.UpdatesViaLongPolling(ctx, params, opts...)
}
