// Package telegram provides Telegram Bot integration using the Telego
// library. It routes messages between Telegram and the internal message
// bus and exposes live chats to the paste engine as delivery handles.
//
// Features:
//   - Long polling for receiving updates
//   - Whitelist-based user authorization
//   - Rate-limited, retried message delivery
//   - Graceful shutdown handling
package telegram

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mymmrac/telego"

	"github.com/dripfeedbot/dripfeed/internal/bus"
	"github.com/dripfeedbot/dripfeed/internal/config"
	"github.com/dripfeedbot/dripfeed/internal/constants"
	"github.com/dripfeedbot/dripfeed/internal/logger"
	"github.com/dripfeedbot/dripfeed/internal/paste"
)

// Connector represents the Telegram bot connector. It implements
// paste.Directory: every session gets a fresh connection ID, so paste
// destinations from a previous session resolve as unreachable and their
// jobs suspend instead of delivering into the wrong connection.
type Connector struct {
	cfg             config.TelegramConfig
	logger          *logger.Logger
	bus             *bus.MessageBus
	ctx             context.Context
	cancel          context.CancelFunc
	outboundCh      <-chan bus.OutboundMessage
	sender          *MessageSender
	longPollManager *LongPollManager
	updateHandler   *UpdateHandler

	mu           sync.RWMutex
	bot          BotInterface
	connectionID string
	botUsername  string
}

// New creates a new Telegram connector.
func New(cfg config.TelegramConfig, log *logger.Logger, msgBus *bus.MessageBus) *Connector {
	conn := &Connector{
		cfg:    cfg,
		logger: log,
		bus:    msgBus,
	}
	conn.longPollManager = NewLongPollManager(conn, log)
	conn.updateHandler = NewUpdateHandler(conn, log, msgBus)
	return conn
}

// Start initializes the Telegram bot and starts listening for updates.
func (c *Connector) Start(ctx context.Context) error {
	c.logger.Info("starting telegram connector",
		logger.Field{Key: "enabled", Value: c.cfg.Enabled})

	if !c.cfg.Enabled {
		c.logger.Info("telegram connector disabled in config")
		return nil
	}

	if c.cfg.Token == "" {
		return fmt.Errorf("invalid config: telegram token is required")
	}

	bot, err := telego.NewBot(c.cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	botUser, err := bot.GetMe(c.ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}

	c.mu.Lock()
	c.bot = NewBotAdapter(bot)
	c.botUsername = botUser.Username
	c.connectionID = uuid.NewString()
	c.mu.Unlock()

	c.sender = NewMessageSender(c.bot, c.logger,
		c.cfg.MessagesPerSecond, c.cfg.Burst,
		time.Duration(c.cfg.SendTimeoutSeconds)*time.Second)

	c.logger.Info("telegram bot initialized",
		logger.Field{Key: "bot_id", Value: botUser.ID},
		logger.Field{Key: "username", Value: botUser.Username},
		logger.Field{Key: "connection_id", Value: c.connectionID})

	if err := c.registerCommands(); err != nil {
		c.logger.ErrorCtx(c.ctx, "failed to register bot commands", err)
	}

	c.outboundCh = c.bus.SubscribeOutbound(c.ctx)
	go c.handleOutbound()

	go c.longPollManager.Start()

	return nil
}

// Stop gracefully stops the Telegram connector. Paste destinations
// created during this session become unreachable immediately.
func (c *Connector) Stop() error {
	c.logger.Info("stopping telegram connector")

	if c.cancel != nil {
		c.cancel()
	}

	c.mu.Lock()
	c.bot = nil
	c.connectionID = ""
	c.mu.Unlock()

	c.outboundCh = nil

	c.logger.Info("telegram connector stopped gracefully")

	return nil
}

// registerCommands registers the bot command menu with Telegram.
func (c *Connector) registerCommands() error {
	commands := &telego.SetMyCommandsParams{
		Commands: []telego.BotCommand{
			{Command: constants.CommandPaste, Description: "Paste a file line by line"},
			{Command: constants.CommandStop, Description: "Suspend the paste for this chat"},
			{Command: constants.CommandResume, Description: "Continue a suspended paste"},
			{Command: constants.CommandStatus, Description: "List registered paste targets"},
			{Command: constants.CommandHelp, Description: "Show the command reference"},
		},
	}

	if err := c.bot.SetMyCommands(c.ctx, commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	c.logger.Info("bot commands registered successfully")

	return nil
}

// isAllowedUser checks the user against the whitelist configuration.
// An empty whitelist allows all users.
func (c *Connector) isAllowedUser(userID string) bool {
	if len(c.cfg.AllowedUsers) == 0 {
		return true
	}

	return slices.Contains(c.cfg.AllowedUsers, userID)
}

// destinationFor builds the paste destination identifying a chat on the
// current connection.
func (c *Connector) destinationFor(chatID int64) paste.Destination {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return paste.Destination{
		Network:      string(bus.ChannelTypeTelegram),
		Server:       c.botUsername,
		Channel:      strconv.FormatInt(chatID, 10),
		ConnectionID: c.connectionID,
	}
}

// FindLive resolves a paste destination to a live chat handle. It
// returns nil when the connector is stopped, the destination belongs to
// another channel, or it was created on an earlier connection.
func (c *Connector) FindLive(dest paste.Destination) paste.Handle {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.bot == nil || c.connectionID == "" {
		return nil
	}
	if dest.Network != string(bus.ChannelTypeTelegram) {
		return nil
	}
	if dest.ConnectionID != c.connectionID {
		return nil
	}

	chatID, err := strconv.ParseInt(dest.Channel, 10, 64)
	if err != nil {
		return nil
	}

	return &chatHandle{connector: c, chatID: chatID}
}

// chatHandle delivers paste lines to one Telegram chat. A handle is only
// valid for the tick it was resolved on; the engine asks FindLive again
// before every line.
type chatHandle struct {
	connector *Connector
	chatID    int64
}

// Send delivers one line to the chat. Send failures are logged; the
// paste engine keeps its cursor advancing either way, matching
// fire-and-forget chat semantics.
func (h *chatHandle) Send(text string) {
	c := h.connector
	if err := c.sender.Send(c.ctx, h.chatID, text); err != nil {
		c.logger.ErrorCtx(c.ctx, "failed to deliver paste line", err,
			logger.Field{Key: "chat_id", Value: h.chatID})
	}
}

// handleOutbound forwards outbound bus messages to Telegram.
func (c *Connector) handleOutbound() {
	c.logger.Info("outbound message handler started")

	for {
		select {
		case <-c.ctx.Done():
			c.logger.Info("outbound message handler stopped")
			return
		case msg, ok := <-c.outboundCh:
			if !ok {
				c.logger.Info("outbound channel closed")
				return
			}

			if msg.ChannelType != bus.ChannelTypeTelegram {
				continue
			}

			chatID, err := strconv.ParseInt(msg.Destination.Channel, 10, 64)
			if err != nil {
				c.logger.ErrorCtx(c.ctx, "invalid chat ID in outbound destination", err,
					logger.Field{Key: "destination", Value: msg.Destination.String()})
				continue
			}

			if err := c.sender.Send(c.ctx, chatID, msg.Content); err != nil {
				c.logger.ErrorCtx(c.ctx, "failed to send outbound message", err,
					logger.Field{Key: "chat_id", Value: chatID})
			}
		}
	}
}
