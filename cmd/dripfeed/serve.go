package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dripfeedbot/dripfeed/internal/app"
	"github.com/dripfeedbot/dripfeed/internal/config"
	"github.com/dripfeedbot/dripfeed/internal/constants"
	"github.com/dripfeedbot/dripfeed/internal/logger"
	"github.com/dripfeedbot/dripfeed/internal/version"
)

var (
	serveConfigPath string
	serveLogLevel   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dripfeed bot (main command)",
	Long: `Start the dripfeed bot with the specified configuration.
This initializes all components (logger, message bus, channel connectors,
paste scheduler, maintenance sweeper) and handles graceful shutdown.`,
	Run: serveHandler,
}

func serveHandler(cmd *cobra.Command, args []string) {
	// Load .env file if it exists
	if err := config.LoadEnvOptional("./.env"); err != nil {
		fmt.Printf("Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	// Determine config path
	configPath := serveConfigPath
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override log level if flag is set
	if serveLogLevel != "" {
		cfg.Logging.Level = serveLogLevel
	}

	// Validate configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Printf("Configuration validation failed:\n")
		for _, e := range errs {
			fmt.Printf("  - %v\n", e)
		}
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Info(version.FormatStartupMessage(),
		logger.Field{Key: "git_commit", Value: GitCommit},
		logger.Field{Key: "config", Value: configPath},
		logger.Field{Key: "telegram_enabled", Value: cfg.Channels.Telegram.Enabled},
		logger.Field{Key: "message_bus_capacity", Value: cfg.MessageBus.Capacity},
	)

	// Run until SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, log)
	if err := application.Run(ctx); err != nil {
		log.Error("Application failed", err)
		os.Exit(1)
	}

	log.Info("Dripfeed stopped gracefully")
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	serveCmd.Flags().StringVarP(&serveLogLevel, "log-level", "l", "", "Override log level (debug, info, warn, error)")
}
