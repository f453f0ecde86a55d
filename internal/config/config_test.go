package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	tests := []struct {
		name  string
		field string
		want  string
		got   string
	}{
		{"logging level", "logging.level", "info", cfg.Logging.Level},
		{"logging format", "logging.format", "json", cfg.Logging.Format},
		{"logging output", "logging.output", "stdout", cfg.Logging.Output},
		{"sweep schedule", "paste.sweep_schedule", "@every 10m", cfg.Paste.SweepSchedule},
		{"base dir", "paste.base_dir", ".", cfg.Paste.BaseDir},
		{"metrics namespace", "metrics.namespace", "dripfeed", cfg.Metrics.Namespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %s = %s, got %s", tt.field, tt.want, tt.got)
			}
		})
	}

	if cfg.Paste.DefaultIntervalMS != 2500 {
		t.Errorf("Expected paste.default_interval_ms = 2500, got %d", cfg.Paste.DefaultIntervalMS)
	}
	if cfg.Paste.MaxFileBytes != 1<<20 {
		t.Errorf("Expected paste.max_file_bytes = %d, got %d", 1<<20, cfg.Paste.MaxFileBytes)
	}
	if cfg.Paste.IdleExpiryMinutes != 1440 {
		t.Errorf("Expected paste.idle_expiry_minutes = 1440, got %d", cfg.Paste.IdleExpiryMinutes)
	}
	if cfg.MessageBus.Capacity != 1000 {
		t.Errorf("Expected message_bus.capacity = 1000, got %d", cfg.MessageBus.Capacity)
	}
}

func validTestConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config with defaults",
			mutate: func(c *Config) {},
		},
		{
			name: "valid config with telegram enabled",
			mutate: func(c *Config) {
				c.Channels.Telegram.Enabled = true
				c.Channels.Telegram.Token = "123456:AAaaBBbbCCccDDddEEffGGhh"
			},
		},
		{
			name:    "missing logging level",
			mutate:  func(c *Config) { c.Logging.Level = "" },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name: "telegram enabled without token",
			mutate: func(c *Config) {
				c.Channels.Telegram.Enabled = true
			},
			wantErr: true,
		},
		{
			name: "telegram token without colon",
			mutate: func(c *Config) {
				c.Channels.Telegram.Enabled = true
				c.Channels.Telegram.Token = "not-a-telegram-token"
			},
			wantErr: true,
		},
		{
			name: "telegram token with non-numeric bot id",
			mutate: func(c *Config) {
				c.Channels.Telegram.Enabled = true
				c.Channels.Telegram.Token = "abcdef:AAaaBBbbCCccDDddEEffGGhh"
			},
			wantErr: true,
		},
		{
			name:    "zero paste interval",
			mutate:  func(c *Config) { c.Paste.DefaultIntervalMS = -1 },
			wantErr: true,
		},
		{
			name:    "negative idle expiry",
			mutate:  func(c *Config) { c.Paste.IdleExpiryMinutes = -5 },
			wantErr: true,
		},
		{
			name:    "path traversal in base dir",
			mutate:  func(c *Config) { c.Paste.BaseDir = "../../etc" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if tt.wantErr && len(errs) == 0 {
				t.Error("Expected validation errors, got none")
			}
			if !tt.wantErr && len(errs) > 0 {
				t.Errorf("Expected no validation errors, got: %v", errs)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[logging]
level = "debug"
format = "text"

[channels.telegram]
enabled = true
token = "123456:AAaaBBbbCCccDDddEEffGGhh"

[paste]
default_interval_ms = 1000
strip_ansi = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Paste.DefaultIntervalMS != 1000 {
		t.Errorf("paste.default_interval_ms = %d, want 1000", cfg.Paste.DefaultIntervalMS)
	}
	if !cfg.Paste.StripANSI {
		t.Error("paste.strip_ansi should be true")
	}

	// Defaults still fill in unset fields
	if cfg.Paste.MaxFileBytes != 1<<20 {
		t.Errorf("paste.max_file_bytes = %d, want default %d", cfg.Paste.MaxFileBytes, 1<<20)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("logging.output = %s, want stdout", cfg.Logging.Output)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DRIPFEED_TEST_TOKEN", "123456:AAaaBBbbCCccDDddEEffGGhh")

	cfg := validTestConfig()
	cfg.Channels.Telegram.Token = "${DRIPFEED_TEST_TOKEN}"

	if err := expandEnvVars(cfg); err != nil {
		t.Fatalf("expandEnvVars() failed: %v", err)
	}

	if cfg.Channels.Telegram.Token != "123456:AAaaBBbbCCccDDddEEffGGhh" {
		t.Errorf("token was not expanded, got: %s", cfg.Channels.Telegram.Token)
	}
}

func TestExpandEnvWithDefault(t *testing.T) {
	got := expandEnv("${DRIPFEED_UNSET_VAR:fallback}")
	if got != "fallback" {
		t.Errorf("expandEnv() = %s, want fallback", got)
	}
}

func TestMaskTelegramToken(t *testing.T) {
	masked := maskTelegramToken("123456:AAaaBBbbCCccDDddEEffGGhh")

	if !strings.HasPrefix(masked, "123456:") {
		t.Errorf("bot ID should stay visible, got: %s", masked)
	}
	if strings.Contains(masked, "BBbbCCccDDddEEff") {
		t.Errorf("token body should be masked, got: %s", masked)
	}
}

func TestMaskedCopy(t *testing.T) {
	cfg := validTestConfig()
	cfg.Channels.Telegram.Token = "123456:AAaaBBbbCCccDDddEEffGGhh"

	masked := cfg.Masked()

	if masked.Channels.Telegram.Token == cfg.Channels.Telegram.Token {
		t.Error("Masked() should mask the telegram token")
	}
	if cfg.Channels.Telegram.Token != "123456:AAaaBBbbCCccDDddEEffGGhh" {
		t.Error("Masked() should not mutate the original config")
	}
}
