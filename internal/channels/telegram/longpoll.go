package telegram

import (
	"github.com/mymmrac/telego"

	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// LongPollManager handles long polling for Telegram updates.
type LongPollManager struct {
	connector *Connector
	logger    *logger.Logger
}

// NewLongPollManager creates a new long poll manager.
func NewLongPollManager(connector *Connector, logger *logger.Logger) *LongPollManager {
	return &LongPollManager{
		connector: connector,
		logger:    logger,
	}
}

// Start starts long polling for Telegram updates.
func (lpm *LongPollManager) Start() {
	c := lpm.connector

	lpm.logger.Info("starting long polling for telegram updates")

	updates, err := c.bot.UpdatesViaLongPolling(c.ctx, &telego.GetUpdatesParams{
		Timeout: c.cfg.PollTimeoutSeconds,
	})
	if err != nil {
		lpm.logger.ErrorCtx(c.ctx, "failed to start long polling", err)
		return
	}

	for {
		select {
		case <-c.ctx.Done():
			lpm.logger.Info("long polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				lpm.logger.Info("updates channel closed")
				return
			}

			if err := c.updateHandler.Handle(update); err != nil {
				lpm.logger.ErrorCtx(c.ctx, "failed to handle update", err)
			}
		}
	}
}
