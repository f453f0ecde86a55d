package config

import (
	"os"
	"strings"
)

// LoadEnv loads environment variables from a .env file. Lines are parsed
// as KEY=VALUE; empty lines and comments (lines starting with #) are
// skipped. Returns an error if the file cannot be read.
func LoadEnv(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if key != "" {
			os.Setenv(key, value)
		}
	}

	return nil
}

// LoadEnvOptional loads environment variables from a .env file if it
// exists. A missing file is not an error.
func LoadEnvOptional(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return LoadEnv(path)
}
