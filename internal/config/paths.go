package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the YAML file inside the config directory.
const ConfigFileName = "config.yaml"

// GetConfigDir returns $GREENROI_HOME, or ~/.greenroi.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".greenroi"), nil
}

// DefaultConfigPath returns <config dir>/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// EnsureLogDir creates the parent directory of the configured log file.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	dir := filepath.Dir(c.Logging.File)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", dir, err)
	}
	return nil
}
