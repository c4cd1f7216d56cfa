// Package config handles client configuration and server environment
// settings for bugreport.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmaia/bugreport/internal/models"
)

// Theme names. An empty theme means "follow the terminal background".
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config represents the persisted client configuration
type Config struct {
	// Theme is the chosen color theme: "light", "dark", or empty to
	// follow the terminal background at startup.
	Theme string `json:"theme,omitempty"`
	// Endpoint is the base URL of the proxy the client talks to.
	Endpoint string `json:"endpoint"`
	// CopyToClipboard copies each assistant reply to the clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Theme:           "",
		Endpoint:        models.DefaultEndpoint,
		CopyToClipboard: false,
	}
}

// ValidTheme reports whether name is an accepted theme value
func ValidTheme(name string) bool {
	return name == "" || name == ThemeLight || name == ThemeDark
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".bugreport"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk. A missing file yields
// the defaults, not an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if !ValidTheme(cfg.Theme) {
		cfg.Theme = ""
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = models.DefaultEndpoint
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
