package telegram

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"

	"github.com/dripfeedbot/dripfeed/internal/bus"
	"github.com/dripfeedbot/dripfeed/internal/constants"
	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// UpdateHandler handles processing of Telegram updates.
type UpdateHandler struct {
	connector *Connector
	logger    *logger.Logger
	bus       *bus.MessageBus
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(connector *Connector, logger *logger.Logger, bus *bus.MessageBus) *UpdateHandler {
	return &UpdateHandler{
		connector: connector,
		logger:    logger,
		bus:       bus,
	}
}

// Handle processes a Telegram update and publishes it to the message bus.
func (uh *UpdateHandler) Handle(update telego.Update) error {
	if update.Message == nil {
		return nil
	}

	msg := update.Message
	if msg.Text == "" {
		// Skip non-text messages (photos, stickers, etc.)
		return nil
	}

	var userID string
	if msg.From != nil {
		userID = fmt.Sprintf("%d", msg.From.ID)
	}

	if !uh.connector.isAllowedUser(userID) {
		uh.logger.WarnCtx(uh.connector.ctx, "message blocked - user not in whitelist",
			logger.Field{Key: "user_id", Value: userID},
			logger.Field{Key: "username", Value: msg.From.Username})
		return nil
	}

	dest := uh.connector.destinationFor(msg.Chat.ID)

	inboundMsg := bus.NewInboundMessage(
		bus.ChannelTypeTelegram,
		dest,
		userID,
		normalizeCommandText(msg.Text),
		map[string]any{
			"message_id": msg.MessageID,
			"chat_id":    msg.Chat.ID,
			"chat_type":  msg.Chat.Type,
		},
	)

	if err := uh.bus.PublishInbound(*inboundMsg); err != nil {
		return fmt.Errorf("failed to publish inbound message: %w", err)
	}

	return nil
}

// normalizeCommandText rewrites Telegram-style slash commands to the
// bot's command prefix, so "/paste notes.txt" and "!paste notes.txt"
// behave identically. The "@botname" suffix Telegram appends in group
// chats is dropped.
func normalizeCommandText(text string) string {
	if !strings.HasPrefix(text, "/") {
		return text
	}

	rest := strings.TrimPrefix(text, "/")
	if rest == "" {
		return text
	}

	// Strip an @botname mention from the command word.
	if at := strings.Index(rest, "@"); at != -1 {
		if space := strings.Index(rest, " "); space == -1 || at < space {
			end := strings.Index(rest[at:], " ")
			if end == -1 {
				rest = rest[:at]
			} else {
				rest = rest[:at] + rest[at+end:]
			}
		}
	}

	return constants.CommandPrefix + rest
}
