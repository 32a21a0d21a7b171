package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// HistoryConfig configures the scan/clean history store.
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Path          string `mapstructure:"path"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// MemoryConfig configures the memory estimator.
type MemoryConfig struct {
	// Source is the kernel counters file.
	Source string `mapstructure:"source"`

	// DropCaches is the kernel control file for cache-drop requests.
	DropCaches string `mapstructure:"drop_caches"`
}

// Config represents the application configuration.
type Config struct {
	// BasePath is the root the well-known junk locations hang off
	// (home directory when empty).
	BasePath string `mapstructure:"base_path"`

	// StoragePath selects the filesystem measured by the storage
	// estimator.
	StoragePath string `mapstructure:"storage_path"`

	// Workers bounds walk parallelism.
	Workers int `mapstructure:"workers"`

	// DownloadMaxAgeDays is the download age threshold in days.
	DownloadMaxAgeDays int `mapstructure:"download_max_age_days"`

	History HistoryConfig `mapstructure:"history"`
	Memory  MemoryConfig  `mapstructure:"memory"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/cleaner/config.yaml
//   - $HOME/.config/cleaner/config.yaml
//
// Environment variables are prefixed with CLEANER_
// (e.g. CLEANER_WORKERS).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, appName))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", appName))

	v.SetEnvPrefix("CLEANER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_path", homeDir)
	v.SetDefault("storage_path", "/")
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("download_max_age_days", DefaultDownloadMaxAgeDays)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", DefaultHistoryPath())
	v.SetDefault("history.retention_days", DefaultRetentionDays)
	v.SetDefault("memory.source", "")      // estimator default
	v.SetDefault("memory.drop_caches", "") // estimator default
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.components", map[string]string{
		"scanner": "info",
		"meminfo": "info",
		"storage": "info",
		"history": "warn",
	})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.HasPrefix(cfg.BasePath, "~") {
		cfg.BasePath = filepath.Join(homeDir, cfg.BasePath[1:])
	}

	return &cfg, nil
}

// DataDir returns $XDG_DATA_HOME/cleaner/ for the history database.
func DataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// StateDir returns $XDG_STATE_HOME/cleaner/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// CacheDir returns $XDG_CACHE_HOME/cleaner/, one of this process's own
// scannable directories.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// DefaultHistoryPath returns the default history database path.
func DefaultHistoryPath() string {
	return filepath.Join(DataDir(), "history.db")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "cleaner.log")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	if err := os.MkdirAll(DataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	if err := os.MkdirAll(StateDir(), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}
