package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dripfeedbot/dripfeed/internal/bus"
	"github.com/dripfeedbot/dripfeed/internal/channels/telegram"
	"github.com/dripfeedbot/dripfeed/internal/commands"
	"github.com/dripfeedbot/dripfeed/internal/logger"
	"github.com/dripfeedbot/dripfeed/internal/maintenance"
	"github.com/dripfeedbot/dripfeed/internal/paste"
	"github.com/dripfeedbot/dripfeed/internal/textsource"
)

// Initialize initializes all application components: the message bus,
// channel connectors, the paste scheduler, the command handler, the
// maintenance sweeper, and metrics exposition.
func (a *App) Initialize(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)

	// 1. Message bus
	a.messageBus = bus.New(a.config.MessageBus.Capacity, a.logger)
	if err := a.messageBus.Start(a.ctx); err != nil {
		return fmt.Errorf("failed to start message bus: %w", err)
	}

	// 2. Metrics. Each Initialize builds a fresh registry so Restart()
	// does not trip duplicate registration.
	var pasteMetrics *paste.Metrics
	if a.config.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		pasteMetrics = paste.InitPrometheusMetrics(a.config.Metrics.Namespace, registry)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		a.metricsServer = &http.Server{
			Addr:              a.config.Metrics.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.logger.Info("metrics server listening",
				logger.Field{Key: "addr", Value: a.config.Metrics.ListenAddr})
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.logger.Error("metrics server failed", err)
			}
		}()
	}

	// 3. Telegram connector. It doubles as the paste engine's
	// destination directory.
	var directory paste.Directory = unreachableDirectory{}
	if a.config.Channels.Telegram.Enabled {
		a.telegram = telegram.New(a.config.Channels.Telegram, a.logger, a.messageBus)
		if err := a.telegram.Start(a.ctx); err != nil {
			return fmt.Errorf("failed to start telegram connector: %w", err)
		}
		directory = a.telegram
	}

	// 4. Paste scheduler
	a.pasteScheduler = paste.NewScheduler(
		paste.NewTickerTimer(),
		directory,
		&busSink{bus: a.messageBus, logger: a.logger},
		a.logger,
		pasteMetrics,
	)

	// 5. Text source reader
	a.textReader = textsource.New(textsource.Options{
		MaxFileBytes:   a.config.Paste.MaxFileBytes,
		StripANSI:      a.config.Paste.StripANSI,
		HTMLToMarkdown: a.config.Paste.HTMLToMarkdown,
	}, a.logger)

	// 6. Command handler
	a.commandHandler = commands.NewHandler(
		a.pasteScheduler,
		a.textReader,
		a.messageBus,
		a.logger,
		a.config.Paste.DefaultInterval(),
		a.config.Paste.BaseDir,
	)

	// 7. Maintenance sweeper
	a.sweeper = maintenance.New(
		a.pasteScheduler,
		a.logger,
		a.config.Paste.SweepSchedule,
		a.config.Paste.IdleExpiry(),
	)
	if err := a.sweeper.Start(); err != nil {
		return fmt.Errorf("failed to start maintenance sweeper: %w", err)
	}

	a.mu.Lock()
	a.started = true
	a.mu.Unlock()

	return nil
}
