package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setTestEnv points HOME and the XDG dirs at a temp directory so Load
// never sees the real user configuration.
func setTestEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

// TestLoadDefaults verifies defaults apply with no config file.
func TestLoadDefaults(t *testing.T) {
	home := setTestEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.BasePath)
	assert.Equal(t, "/", cfg.StoragePath)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultDownloadMaxAgeDays, cfg.DownloadMaxAgeDays)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, DefaultRetentionDays, cfg.History.RetentionDays)
	assert.Equal(t, "info", cfg.Logging.Level)
}

// TestLoadFromFile verifies a YAML config file overrides defaults.
func TestLoadFromFile(t *testing.T) {
	home := setTestEnv(t)

	configDir := filepath.Join(home, ".config", "cleaner")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(`
base_path: /mnt/storage
workers: 8
download_max_age_days: 14
history:
  enabled: false
logging:
  level: debug
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/mnt/storage", cfg.BasePath)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 14, cfg.DownloadMaxAgeDays)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

// TestLoadEnvOverride verifies CLEANER_ environment variables win.
func TestLoadEnvOverride(t *testing.T) {
	setTestEnv(t)
	t.Setenv("CLEANER_WORKERS", "16")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Workers)
}

// TestLoadExpandsTilde verifies ~ expansion in base_path.
func TestLoadExpandsTilde(t *testing.T) {
	home := setTestEnv(t)

	configDir := filepath.Join(home, ".config", "cleaner")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"),
		[]byte("base_path: ~/storage\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "storage"), cfg.BasePath)
}

// TestDirHelpers verifies the XDG-derived paths share the app name.
func TestDirHelpers(t *testing.T) {
	assert.Contains(t, DataDir(), "cleaner")
	assert.Contains(t, StateDir(), "cleaner")
	assert.Contains(t, CacheDir(), "cleaner")
	assert.Equal(t, filepath.Join(DataDir(), "history.db"), DefaultHistoryPath())
	assert.Equal(t, filepath.Join(StateDir(), "cleaner.log"), DefaultLogPath())
}
