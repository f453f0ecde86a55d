// Package config provides configuration loading and validation for dripfeed.
// It supports TOML configuration files with environment variable expansion,
// default values, and comprehensive validation.
//
// Configuration structure:
//   - [logging]: Logging level, format, and output
//   - [channels]: Channel configurations (Telegram)
//   - [paste]: Paste engine settings (interval, file limits, input filters)
//   - [message_bus]: Message bus capacity settings
//   - [metrics]: Prometheus exposition settings
//
// Environment variables:
// Environment variables can be referenced using ${VAR} or ${VAR:default} syntax.
// For example: token = "${TELEGRAM_BOT_TOKEN}"
package config

import "time"

// Config represents the main application configuration.
type Config struct {
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Channels   ChannelsConfig   `toml:"channels" yaml:"channels"`
	Paste      PasteConfig      `toml:"paste" yaml:"paste"`
	MessageBus MessageBusConfig `toml:"message_bus" yaml:"message_bus"`
	Metrics    MetricsConfig    `toml:"metrics" yaml:"metrics"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	Output string `toml:"output" yaml:"output"`
}

// ChannelsConfig holds the per-channel connector configurations.
type ChannelsConfig struct {
	Telegram TelegramConfig `toml:"telegram" yaml:"telegram"`
}

// TelegramConfig configures the Telegram connector.
type TelegramConfig struct {
	Enabled            bool     `toml:"enabled" yaml:"enabled"`
	Token              string   `toml:"token" yaml:"token"`
	AllowedUsers       []string `toml:"allowed_users" yaml:"allowed_users"`
	PollTimeoutSeconds int      `toml:"poll_timeout_seconds" yaml:"poll_timeout_seconds"`
	SendTimeoutSeconds int      `toml:"send_timeout_seconds" yaml:"send_timeout_seconds"`
	MessagesPerSecond  float64  `toml:"messages_per_second" yaml:"messages_per_second"`
	Burst              int      `toml:"burst" yaml:"burst"`
}

// PasteConfig configures the paste delivery engine.
type PasteConfig struct {
	DefaultIntervalMS int    `toml:"default_interval_ms" yaml:"default_interval_ms"`
	MaxFileBytes      int64  `toml:"max_file_bytes" yaml:"max_file_bytes"`
	IdleExpiryMinutes int    `toml:"idle_expiry_minutes" yaml:"idle_expiry_minutes"`
	SweepSchedule     string `toml:"sweep_schedule" yaml:"sweep_schedule"`
	BaseDir           string `toml:"base_dir" yaml:"base_dir"`
	StripANSI         bool   `toml:"strip_ansi" yaml:"strip_ansi"`
	HTMLToMarkdown    bool   `toml:"html_to_markdown" yaml:"html_to_markdown"`
}

// DefaultInterval returns the configured default line interval as a duration.
func (p *PasteConfig) DefaultInterval() time.Duration {
	return time.Duration(p.DefaultIntervalMS) * time.Millisecond
}

// IdleExpiry returns how long suspended pastes are retained. Zero disables
// expiry.
func (p *PasteConfig) IdleExpiry() time.Duration {
	return time.Duration(p.IdleExpiryMinutes) * time.Minute
}

// MessageBusConfig configures the internal message bus.
type MessageBusConfig struct {
	Capacity int `toml:"capacity" yaml:"capacity"`
}

// MetricsConfig configures Prometheus exposition.
type MetricsConfig struct {
	Enabled    bool   `toml:"enabled" yaml:"enabled"`
	Namespace  string `toml:"namespace" yaml:"namespace"`
	ListenAddr string `toml:"listen_addr" yaml:"listen_addr"`
}
