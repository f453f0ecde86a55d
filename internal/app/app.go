// Package app provides the main application structure for dripfeed.
// It coordinates the paste scheduler, message bus, channel connectors,
// command handler, and the maintenance sweeper.
package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/dripfeedbot/dripfeed/internal/bus"
	"github.com/dripfeedbot/dripfeed/internal/channels/telegram"
	"github.com/dripfeedbot/dripfeed/internal/commands"
	"github.com/dripfeedbot/dripfeed/internal/config"
	"github.com/dripfeedbot/dripfeed/internal/logger"
	"github.com/dripfeedbot/dripfeed/internal/maintenance"
	"github.com/dripfeedbot/dripfeed/internal/paste"
	"github.com/dripfeedbot/dripfeed/internal/textsource"
)

// App represents the main application structure.
// It holds references to all major components and manages their lifecycle.
type App struct {
	// Configuration and core services
	config *config.Config
	logger *logger.Logger

	// Communication infrastructure
	messageBus *bus.MessageBus

	// Paste engine
	pasteScheduler *paste.Scheduler
	textReader     *textsource.Reader
	commandHandler *commands.Handler

	// Channels
	telegram *telegram.Connector

	// Scheduled maintenance
	sweeper *maintenance.Sweeper

	// Metrics exposition
	metricsServer *http.Server

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Thread-safety
	mu           sync.RWMutex
	started      bool
	restartMutex sync.Mutex // Serializes Restart() calls
}

// New creates a new App instance with the provided configuration and
// logger. Other components are initialized in Initialize().
func New(cfg *config.Config, log *logger.Logger) *App {
	return &App{
		config: cfg,
		logger: log,
	}
}

// Run starts the application and blocks until the context is cancelled,
// then performs a graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	if err := a.Initialize(ctx); err != nil {
		return err
	}

	if err := a.StartMessageProcessing(ctx); err != nil {
		return err
	}

	a.logger.Info("Application is running")

	<-ctx.Done()

	return a.Shutdown()
}

// Scheduler exposes the paste scheduler, mainly for status inspection.
func (a *App) Scheduler() *paste.Scheduler {
	return a.pasteScheduler
}
