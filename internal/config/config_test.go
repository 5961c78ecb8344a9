package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/workouttimer/internal/store"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test storage defaults
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(DefaultDir(), "workouts.json"), cfg.Storage.Path)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "workouttimer:", cfg.Storage.Redis.Prefix)

	// Test log defaults
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Log.File)

	// Test UI defaults
	assert.Equal(t, 3, cfg.UI.ToastSeconds)
	assert.True(t, cfg.UI.AltScreen)
	assert.Equal(t, 3*time.Second, cfg.ToastDuration())

	// Test server defaults
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
	assert.Equal(t, CurrentVersion, cfg.Version)
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
storage:
  backend: sqlite
  redis:
    addr: redis.internal:6380
ui:
  toastSeconds: 5
`
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Custom values
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "redis.internal:6380", cfg.Storage.Redis.Addr)
	assert.Equal(t, 5, cfg.UI.ToastSeconds)

	// Defaults filled in
	assert.Equal(t, filepath.Join(DefaultDir(), "workouts.db"), cfg.Storage.Path, "path follows backend")
	assert.Equal(t, "workouttimer:", cfg.Storage.Redis.Prefix)
	assert.True(t, cfg.UI.AltScreen, "absent bools keep their defaults")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Backend = store.BackendRedis
	cfg.UI.AltScreen = false
	cfg.Server.Addr = ":9000"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := MergeWithDefaults(&Config{Storage: StorageConfig{Backend: "sqlite"}})

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, filepath.Join(DefaultDir(), "workouts.db"), cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3, cfg.UI.ToastSeconds)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	t.Setenv("WORKOUTTIMER_STORAGE_BACKEND", "sqlite")
	t.Setenv("WORKOUTTIMER_REDIS_ADDR", "10.0.0.5:6379")
	t.Setenv("WORKOUTTIMER_REDIS_DB", "2")
	t.Setenv("WORKOUTTIMER_LOG_LEVEL", "debug")
	t.Setenv("WORKOUTTIMER_SERVER_ADDR", "0.0.0.0:80")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(DefaultDir(), "workouts.db"), cfg.Storage.Path)
	assert.Equal(t, "10.0.0.5:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:80", cfg.Server.Addr)

	t.Setenv("WORKOUTTIMER_STORAGE_PATH", "/tmp/custom.db")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.Storage.Path)
}

func TestLoad_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: etcd\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "storage.backend")

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "log level")
}

func TestSetBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetBackend(store.BackendSQLite)
	assert.Equal(t, filepath.Join(DefaultDir(), "workouts.db"), cfg.Storage.Path)

	cfg.Storage.Path = "/data/mine.db"
	cfg.SetBackend(store.BackendFile)
	assert.Equal(t, "/data/mine.db", cfg.Storage.Path, "explicit paths are kept")
}

func TestStoreOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Redis.DB = 4

	opts := cfg.StoreOptions()
	assert.Equal(t, "file", opts.Backend)
	assert.Equal(t, cfg.Storage.Path, opts.Path)
	assert.Equal(t, 4, opts.Redis.DB)
	assert.Equal(t, "workouttimer:", opts.Redis.Prefix)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
