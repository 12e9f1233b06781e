// Package config defines the agent-teams configuration, loaded through viper
// from a YAML config file and AGENT_TEAMS_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete agent-teams configuration
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Logging LoggingConfig `mapstructure:"logging"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// PathsConfig controls where agent-teams stores data
type PathsConfig struct {
	// DataDir is the root directory for all team state.
	// If empty, defaults to ~/.openclaw/teams.
	// Supports ~ for home directory expansion.
	DataDir string `mapstructure:"data_dir"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// WatchConfig controls the live inbox viewer
type WatchConfig struct {
	// PollIntervalMs is how often the watch command polls the inbox
	// (in milliseconds, default: 500)
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
}

// PollInterval returns the watch poll interval as a time.Duration
func (w *WatchConfig) PollInterval() time.Duration {
	return time.Duration(w.PollIntervalMs) * time.Millisecond
}

// ResolveDataDir returns the data directory with ~ expanded, falling back
// to ~/.openclaw/teams when unset.
func (p *PathsConfig) ResolveDataDir() string {
	dir := p.DataDir
	if dir == "" {
		dir = filepath.Join("~", ".openclaw", "teams")
	}
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir: "", // Empty means use default: ~/.openclaw/teams
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Watch: WatchConfig{
			PollIntervalMs: 500,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("paths.data_dir", defaults.Paths.DataDir)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)

	viper.SetDefault("watch.poll_interval_ms", defaults.Watch.PollIntervalMs)
}

// Load unmarshals the current viper state into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agent-teams")
	}
	// Fall back to ~/.config/agent-teams
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agent-teams"
	}
	return filepath.Join(home, ".config", "agent-teams")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
