package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dripfeedbot/dripfeed/internal/constants"
)

// Load loads the configuration from a TOML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := expandEnvVars(&cfg); err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []error {
	var errors []error

	if c.Logging.Level == "" {
		errors = append(errors, fmt.Errorf("logging.level is required"))
	} else {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
		}
	}

	if c.Logging.Format == "" {
		errors = append(errors, fmt.Errorf("logging.format is required"))
	} else {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
		}
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	if c.Channels.Telegram.Enabled {
		if c.Channels.Telegram.Token == "" {
			errors = append(errors, fmt.Errorf("channels.telegram.token is required when telegram is enabled"))
		} else if err := validateTelegramToken(c.Channels.Telegram.Token); err != nil {
			errors = append(errors, err)
		}

		if c.Channels.Telegram.MessagesPerSecond <= 0 {
			errors = append(errors, fmt.Errorf("channels.telegram.messages_per_second must be positive, got: %v", c.Channels.Telegram.MessagesPerSecond))
		}
	}

	if c.Paste.DefaultIntervalMS <= 0 {
		errors = append(errors, fmt.Errorf("paste.default_interval_ms must be positive, got: %d", c.Paste.DefaultIntervalMS))
	}

	if c.Paste.MaxFileBytes <= 0 {
		errors = append(errors, fmt.Errorf("paste.max_file_bytes must be positive, got: %d", c.Paste.MaxFileBytes))
	}

	if c.Paste.IdleExpiryMinutes < 0 {
		errors = append(errors, fmt.Errorf("paste.idle_expiry_minutes cannot be negative, got: %d", c.Paste.IdleExpiryMinutes))
	}

	if c.Paste.BaseDir != "" {
		if err := validatePath(c.Paste.BaseDir, "paste.base_dir"); err != nil {
			errors = append(errors, err)
		}
	}

	if c.MessageBus.Capacity <= 0 {
		errors = append(errors, fmt.Errorf("message_bus.capacity must be positive, got: %d", c.MessageBus.Capacity))
	}

	return errors
}

func validateTelegramToken(token string) error {
	if token == "" {
		return fmt.Errorf("telegram token cannot be empty")
	}

	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return fmt.Errorf("telegram token has invalid format (expected format: <bot_id>:<token>, got: %s)", maskSecret(token))
	}

	botID := parts[0]
	botToken := parts[1]

	if len(botID) < 3 || len(botID) > 15 {
		return fmt.Errorf("telegram token has invalid bot ID length (expected 3-15 digits, got %d digits)", len(botID))
	}

	for _, r := range botID {
		if r < '0' || r > '9' {
			return fmt.Errorf("telegram token has invalid bot ID (expected digits only, got: %s)", botID)
		}
	}

	if len(botToken) < 10 || len(botToken) > 50 {
		return fmt.Errorf("telegram token has invalid token length (expected 10-50 characters, got %d)", len(botToken))
	}

	return nil
}

func validatePath(path, fieldName string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if strings.HasPrefix(path, "~") {
		return nil
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("%s contains potentially dangerous path traversal sequence", fieldName)
	}

	return nil
}

// applyDefaults fills in defaults for every unset field.
func applyDefaults(c *Config) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}

	if c.Channels.Telegram.PollTimeoutSeconds == 0 {
		c.Channels.Telegram.PollTimeoutSeconds = 30
	}
	if c.Channels.Telegram.SendTimeoutSeconds == 0 {
		c.Channels.Telegram.SendTimeoutSeconds = 10
	}
	if c.Channels.Telegram.MessagesPerSecond == 0 {
		c.Channels.Telegram.MessagesPerSecond = 1
	}
	if c.Channels.Telegram.Burst == 0 {
		c.Channels.Telegram.Burst = 3
	}

	if c.Paste.DefaultIntervalMS == 0 {
		c.Paste.DefaultIntervalMS = int(constants.DefaultPasteInterval.Milliseconds())
	}
	if c.Paste.MaxFileBytes == 0 {
		c.Paste.MaxFileBytes = constants.DefaultMaxFileBytes
	}
	if c.Paste.IdleExpiryMinutes == 0 {
		c.Paste.IdleExpiryMinutes = int(constants.DefaultIdleExpiry.Minutes())
	}
	if c.Paste.SweepSchedule == "" {
		c.Paste.SweepSchedule = constants.DefaultSweepSchedule
	}
	if c.Paste.BaseDir == "" {
		c.Paste.BaseDir = constants.DefaultPasteDir
	}

	if c.MessageBus.Capacity == 0 {
		c.MessageBus.Capacity = 1000
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "dripfeed"
	}
	if c.Metrics.ListenAddr == "" {
		c.Metrics.ListenAddr = ":9090"
	}
}

// expandEnvVars expands environment variable references in the configuration.
func expandEnvVars(c *Config) error {
	if strings.HasPrefix(c.Channels.Telegram.Token, "${") {
		c.Channels.Telegram.Token = expandEnv(c.Channels.Telegram.Token)
	}

	if strings.HasPrefix(c.Paste.BaseDir, "${") {
		c.Paste.BaseDir = expandEnv(c.Paste.BaseDir)
	}
	c.Paste.BaseDir = expandHome(c.Paste.BaseDir)

	return nil
}

// expandEnv expands an environment variable of the form ${VAR} or ${VAR:default}.
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		key := parts[0]
		defaultVal := parts[1]
		if val := os.Getenv(key); val != "" {
			return val
		}
		return defaultVal
	}

	return os.Getenv(s[2:end])
}

// expandHome expands a leading ~ in a path.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
