package app

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/dripfeedbot/dripfeed/internal/bus"
	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// StartMessageProcessing starts the message processing loop.
// It subscribes to inbound messages and processes them in a goroutine.
func (a *App) StartMessageProcessing(ctx context.Context) error {
	inboundCh := a.messageBus.SubscribeInbound(ctx)
	if inboundCh == nil {
		a.logger.ErrorCtx(ctx, "Failed to subscribe to inbound messages: channel is nil", nil)
		return nil
	}

	go func() {
		a.logger.Info("Message processing started")
		for {
			select {
			case <-ctx.Done():
				a.logger.Info("Message processing stopped")
				return
			case msg, ok := <-inboundCh:
				if !ok {
					a.logger.Info("Inbound channel closed")
					return
				}
				a.processMessage(ctx, msg)
			}
		}
	}()

	return nil
}

// processMessage dispatches a single inbound message to the command
// handler. A panic during dispatch is logged and contained, so one bad
// message cannot take down the processing loop.
func (a *App) processMessage(ctx context.Context, msg bus.InboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorCtx(ctx, "panic while processing message", fmt.Errorf("%v", r),
				logger.Field{Key: "target", Value: msg.Destination.String()},
				logger.Field{Key: "stack", Value: string(debug.Stack())})
		}
	}()

	a.logger.DebugCtx(ctx, "Processing message",
		logger.Field{Key: "user_id", Value: msg.UserID},
		logger.Field{Key: "target", Value: msg.Destination.String()})

	if consumed := a.commandHandler.HandleMessage(ctx, msg); !consumed {
		a.logger.DebugCtx(ctx, "Message ignored, not a known command",
			logger.Field{Key: "target", Value: msg.Destination.String()})
	}
}
