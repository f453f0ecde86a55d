package app

import (
	"github.com/dripfeedbot/dripfeed/internal/bus"
	"github.com/dripfeedbot/dripfeed/internal/logger"
	"github.com/dripfeedbot/dripfeed/internal/paste"
)

// busSink routes engine diagnostics back to the chat they concern,
// through the outbound queue. PublishOutbound never blocks, which keeps
// the Sink contract.
type busSink struct {
	bus    *bus.MessageBus
	logger *logger.Logger
}

func (s *busSink) Print(dest paste.Destination, text string) {
	msg := bus.NewOutboundMessage(bus.ChannelType(dest.Network), dest, text, nil)
	if err := s.bus.PublishOutbound(*msg); err != nil {
		s.logger.Warn("failed to publish paste diagnostic",
			logger.Field{Key: "destination", Value: dest.String()},
			logger.Field{Key: "text", Value: text},
			logger.Field{Key: "error", Value: err.Error()})
	}
}

// unreachableDirectory is used when no channel connector is enabled;
// every paste suspends on its first tick.
type unreachableDirectory struct{}

func (unreachableDirectory) FindLive(paste.Destination) paste.Handle { return nil }
