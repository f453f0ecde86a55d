// Package bus provides event structures for the message bus system.
// It defines the message types used for communication between the
// channel connectors and the command layer: inbound chat messages from
// external channels and outbound replies to be sent back to them.
//
// All message types support JSON serialization for easy transport and storage.
package bus

import (
	"encoding/json"
	"time"

	"github.com/dripfeedbot/dripfeed/internal/paste"
)

// ChannelType represents the type of communication channel
type ChannelType string

const (
	ChannelTypeTelegram ChannelType = "telegram"
	ChannelTypeCLI      ChannelType = "cli"
)

// InboundMessage represents a message received from an external channel
type InboundMessage struct {
	ChannelType ChannelType       `json:"channel_type"`
	Destination paste.Destination `json:"destination"`
	UserID      string            `json:"user_id"`
	Content     string            `json:"content"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
}

// OutboundMessage represents a reply to be sent to an external channel
type OutboundMessage struct {
	ChannelType ChannelType       `json:"channel_type"`
	Destination paste.Destination `json:"destination"`
	Content     string            `json:"content"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
}

// ToJSON serializes the InboundMessage to JSON bytes
func (m *InboundMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON deserializes the InboundMessage from JSON bytes
func (m *InboundMessage) FromJSON(data []byte) error {
	return json.Unmarshal(data, m)
}

// ToJSON serializes the OutboundMessage to JSON bytes
func (m *OutboundMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON deserializes the OutboundMessage from JSON bytes
func (m *OutboundMessage) FromJSON(data []byte) error {
	return json.Unmarshal(data, m)
}

// NewInboundMessage creates a new InboundMessage with the current timestamp
func NewInboundMessage(channelType ChannelType, dest paste.Destination, userID, content string, metadata map[string]any) *InboundMessage {
	return &InboundMessage{
		ChannelType: channelType,
		Destination: dest,
		UserID:      userID,
		Content:     content,
		Timestamp:   time.Now(),
		Metadata:    metadata,
	}
}

// NewOutboundMessage creates a new OutboundMessage with the current timestamp
func NewOutboundMessage(channelType ChannelType, dest paste.Destination, content string, metadata map[string]any) *OutboundMessage {
	return &OutboundMessage{
		ChannelType: channelType,
		Destination: dest,
		Content:     content,
		Timestamp:   time.Now(),
		Metadata:    metadata,
	}
}
