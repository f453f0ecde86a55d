// Package commands provides command handling for chat messages.
package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dripfeedbot/dripfeed/internal/bus"
	"github.com/dripfeedbot/dripfeed/internal/constants"
	"github.com/dripfeedbot/dripfeed/internal/logger"
	"github.com/dripfeedbot/dripfeed/internal/paste"
)

// SchedulerInterface defines the paste engine operations needed by Handler.
type SchedulerInterface interface {
	Paste(dest paste.Destination, lines []string, interval time.Duration) error
	Stop(dest paste.Destination) error
	Resume(dest paste.Destination) error
	Targets() []paste.TargetStatus
}

// ReaderInterface defines the file reading operations needed by Handler.
type ReaderInterface interface {
	ReadLines(path string) ([]string, error)
}

// MessageBusInterface defines the message bus operations needed by Handler.
type MessageBusInterface interface {
	PublishOutbound(msg bus.OutboundMessage) error
}

// Handler parses chat commands and drives the paste scheduler.
type Handler struct {
	scheduler       SchedulerInterface
	reader          ReaderInterface
	messageBus      MessageBusInterface
	logger          *logger.Logger
	defaultInterval time.Duration
	baseDir         string
}

// NewHandler creates a new command handler. Relative paste file paths are
// resolved against baseDir.
func NewHandler(
	scheduler SchedulerInterface,
	reader ReaderInterface,
	messageBus MessageBusInterface,
	log *logger.Logger,
	defaultInterval time.Duration,
	baseDir string,
) *Handler {
	if defaultInterval <= 0 {
		defaultInterval = constants.DefaultPasteInterval
	}
	if baseDir == "" {
		baseDir = constants.DefaultPasteDir
	}
	return &Handler{
		scheduler:       scheduler,
		reader:          reader,
		messageBus:      messageBus,
		logger:          log,
		defaultInterval: defaultInterval,
		baseDir:         baseDir,
	}
}

// HandleMessage inspects an inbound message and executes it if it is a
// command. It reports whether the message was consumed. Every prefixed
// message is consumed, unknown verbs included, even when execution
// fails; failures are reported back to the chat, never up the call
// stack. Only unprefixed plain chat is left unconsumed.
func (h *Handler) HandleMessage(ctx context.Context, msg bus.InboundMessage) bool {
	content := strings.TrimSpace(msg.Content)
	if !strings.HasPrefix(content, constants.CommandPrefix) {
		return false
	}

	words := strings.Fields(content)
	cmd := strings.ToLower(strings.TrimPrefix(words[0], constants.CommandPrefix))
	args := words[1:]

	switch cmd {
	case constants.CommandPaste:
		h.handlePaste(ctx, msg, args)
	case constants.CommandStop:
		h.handleStop(ctx, msg)
	case constants.CommandResume:
		h.handleResume(ctx, msg)
	case constants.CommandStatus:
		h.handleStatus(ctx, msg)
	case constants.CommandHelp:
		h.reply(ctx, msg, constants.MsgHelp)
	default:
		// Anything in the command namespace is consumed, even when the
		// verb matches nothing, so the host never treats it as chat.
		h.reply(ctx, msg, fmt.Sprintf(constants.MsgUnknownCommand, words[0]))
	}

	return true
}

// handlePaste starts a new paste from a file, replacing any existing paste
// for the same destination.
func (h *Handler) handlePaste(ctx context.Context, msg bus.InboundMessage, args []string) {
	if len(args) == 0 {
		h.reply(ctx, msg, constants.MsgPasteUsage)
		return
	}

	interval := h.defaultInterval
	if len(args) >= 2 {
		ms, err := strconv.Atoi(args[1])
		if err != nil || ms <= 0 {
			h.reply(ctx, msg, fmt.Sprintf(constants.MsgBadInterval, args[1]))
			return
		}
		interval = time.Duration(ms) * time.Millisecond
	}

	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(h.baseDir, path)
	}

	lines, err := h.reader.ReadLines(path)
	if err != nil {
		h.logger.WarnCtx(ctx, "paste file rejected",
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "error", Value: err.Error()})
		h.reply(ctx, msg, fmt.Sprintf(constants.MsgReadError, err))
		return
	}

	if len(lines) == 0 {
		h.reply(ctx, msg, fmt.Sprintf(constants.MsgEmptyFile, args[0]))
		return
	}

	if err := h.scheduler.Paste(msg.Destination, lines, interval); err != nil {
		h.logger.ErrorCtx(ctx, "failed to start paste", err,
			logger.Field{Key: "destination", Value: msg.Destination.String()})
		h.reply(ctx, msg, fmt.Sprintf(constants.MsgReadError, err))
	}
}

// handleStop suspends the paste for the requesting destination.
func (h *Handler) handleStop(ctx context.Context, msg bus.InboundMessage) {
	err := h.scheduler.Stop(msg.Destination)
	switch {
	case err == nil:
	case errors.Is(err, paste.ErrNotPasting):
		h.reply(ctx, msg, constants.MsgNoPaste)
	case errors.Is(err, paste.ErrNotActive):
		h.reply(ctx, msg, constants.MsgNotPasting)
	default:
		h.logger.ErrorCtx(ctx, "failed to stop paste", err,
			logger.Field{Key: "destination", Value: msg.Destination.String()})
	}
}

// handleResume continues a suspended paste from its saved position.
func (h *Handler) handleResume(ctx context.Context, msg bus.InboundMessage) {
	err := h.scheduler.Resume(msg.Destination)
	switch {
	case err == nil:
	case errors.Is(err, paste.ErrNotPasting):
		h.reply(ctx, msg, constants.MsgNoPaste)
	case errors.Is(err, paste.ErrAlreadyActive):
		h.reply(ctx, msg, constants.MsgAlreadyPasting)
	default:
		h.logger.ErrorCtx(ctx, "failed to resume paste", err,
			logger.Field{Key: "destination", Value: msg.Destination.String()})
	}
}

// handleStatus reports every registered target and its progress.
func (h *Handler) handleStatus(ctx context.Context, msg bus.InboundMessage) {
	targets := h.scheduler.Targets()
	if len(targets) == 0 {
		h.reply(ctx, msg, constants.MsgStatusEmpty)
		return
	}

	lines := make([]string, 0, len(targets)+1)
	lines = append(lines, constants.MsgStatusHeader)
	for _, t := range targets {
		delivered := t.Total - t.Remaining
		lines = append(lines, fmt.Sprintf(constants.MsgStatusLine,
			t.Dest, t.State, delivered, t.Total, t.Interval))
	}

	h.reply(ctx, msg, strings.Join(lines, "\n"))
}

// reply publishes a one-off response to the chat the command came from.
func (h *Handler) reply(ctx context.Context, msg bus.InboundMessage, text string) {
	out := bus.NewOutboundMessage(msg.ChannelType, msg.Destination, text, nil)
	if err := h.messageBus.PublishOutbound(*out); err != nil {
		h.logger.ErrorCtx(ctx, "failed to publish reply", err,
			logger.Field{Key: "destination", Value: msg.Destination.String()})
	}
}
