package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	content := `
# comment line
TELEGRAM_BOT_TOKEN=123456:secret

EMPTY_IGNORED
DRIPFEED_ENV_TEST = spaced value
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DRIPFEED_ENV_TEST", "")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() failed: %v", err)
	}

	if got := os.Getenv("TELEGRAM_BOT_TOKEN"); got != "123456:secret" {
		t.Errorf("TELEGRAM_BOT_TOKEN = %s, want 123456:secret", got)
	}
	if got := os.Getenv("DRIPFEED_ENV_TEST"); got != "spaced value" {
		t.Errorf("DRIPFEED_ENV_TEST = %q, want %q", got, "spaced value")
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv("/nonexistent/.env"); err == nil {
		t.Error("LoadEnv() should fail for a missing file")
	}
}

func TestLoadEnvOptional(t *testing.T) {
	if err := LoadEnvOptional("/nonexistent/.env"); err != nil {
		t.Errorf("LoadEnvOptional() should ignore a missing file, got: %v", err)
	}
}
