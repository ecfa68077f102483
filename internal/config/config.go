package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	dirName           = "command-reminder"
	configFileName    = "config.yaml"
	remindersFileName = "reminders"

	// EnvConfigDir overrides the configuration directory, mainly for
	// tests and scripted use.
	EnvConfigDir = "REMIND_CONFIG_DIR"
)

// Config is the optional user configuration. A missing config file
// means all defaults.
type Config struct {
	// RemindersPath overrides where the reminders file lives.
	RemindersPath string `yaml:"remindersPath,omitempty"`
	// History disables execution history when set to false.
	History *bool `yaml:"history,omitempty"`
}

// Dir resolves the configuration directory: $REMIND_CONFIG_DIR when
// set, otherwise <user config dir>/command-reminder.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(base, dirName), nil
}

// ConfigPath returns the path to the config file in the given directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, configFileName)
}

// Load reads the configuration from dir. A missing file yields the
// zero config.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to dir.
func Save(cfg *Config, dir string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(ConfigPath(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// RemindersPathIn returns the reminders file path for dir, honoring
// the configured override.
func (c *Config) RemindersPathIn(dir string) string {
	if c.RemindersPath != "" {
		return c.RemindersPath
	}
	return filepath.Join(dir, remindersFileName)
}

// HistoryEnabled reports whether executions should be recorded.
// History is on unless explicitly disabled.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}
