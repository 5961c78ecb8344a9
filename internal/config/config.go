package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riordanpawley/workouttimer/internal/store"
)

// AppName names the config directory
const AppName = "workouttimer"

// Config represents the full workout timer configuration
type Config struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
	Server  ServerConfig  `yaml:"server"`
}

// StorageConfig selects the key/value backend
type StorageConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig contains redis backend settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	ToastSeconds int  `yaml:"toastSeconds"`
	AltScreen    bool `yaml:"altScreen"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultDir is $XDG_CONFIG_HOME/workouttimer or the platform equivalent
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "."+AppName)
	}
	return filepath.Join(dir, AppName)
}

// DefaultPath is the config file read when no --config flag is given
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dir := DefaultDir()

	return &Config{
		Version: CurrentVersion,
		Storage: StorageConfig{
			Backend: store.BackendFile,
			Path:    filepath.Join(dir, "workouts.json"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "workouttimer:",
			},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "workouttimer.log"),
		},
		UI: UIConfig{
			ToastSeconds: 3,
			AltScreen:    true,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseVersionedConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return MergeWithDefaults(cfg), nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(cfg *Config, path string) error {
	cfg.Version = CurrentVersion
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}

	// Merge Storage config
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath(cfg.Storage.Backend)
	}
	if cfg.Storage.Redis.Addr == "" {
		cfg.Storage.Redis.Addr = defaults.Storage.Redis.Addr
	}
	if cfg.Storage.Redis.Prefix == "" {
		cfg.Storage.Redis.Prefix = defaults.Storage.Redis.Prefix
	}

	// Merge Log config
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	// Merge UI config
	if cfg.UI.ToastSeconds <= 0 {
		cfg.UI.ToastSeconds = defaults.UI.ToastSeconds
	}

	// Merge Server config
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}

	return cfg
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides:
//
//	WORKOUTTIMER_STORAGE_BACKEND, WORKOUTTIMER_STORAGE_PATH,
//	WORKOUTTIMER_REDIS_ADDR, WORKOUTTIMER_LOG_LEVEL,
//	WORKOUTTIMER_SERVER_ADDR
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WORKOUTTIMER_STORAGE_BACKEND"); v != "" {
		if cfg.Storage.Path == defaultStoragePath(cfg.Storage.Backend) {
			cfg.Storage.Path = defaultStoragePath(v)
		}
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("WORKOUTTIMER_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("WORKOUTTIMER_REDIS_ADDR"); v != "" {
		cfg.Storage.Redis.Addr = v
	}
	if v := os.Getenv("WORKOUTTIMER_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Redis.DB = db
		}
	}
	if v := os.Getenv("WORKOUTTIMER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WORKOUTTIMER_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendFile, store.BackendSQLite, store.BackendRedis, store.BackendMemory:
	default:
		return fmt.Errorf("storage.backend %q is not one of file, sqlite, redis, memory", c.Storage.Backend)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// SetBackend switches backend, moving a defaulted path along with it
func (c *Config) SetBackend(backend string) {
	if c.Storage.Path == defaultStoragePath(c.Storage.Backend) {
		c.Storage.Path = defaultStoragePath(backend)
	}
	c.Storage.Backend = backend
}

// StoreOptions converts the storage section for store.Open
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend: c.Storage.Backend,
		Path:    c.Storage.Path,
		Redis: store.RedisOptions{
			Addr:     c.Storage.Redis.Addr,
			Password: c.Storage.Redis.Password,
			DB:       c.Storage.Redis.DB,
			Prefix:   c.Storage.Redis.Prefix,
		},
	}
}

// ToastDuration is how long status messages stay visible
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastSeconds) * time.Second
}

// ParseLevel maps a level name onto slog levels
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func defaultStoragePath(backend string) string {
	switch backend {
	case store.BackendSQLite:
		return filepath.Join(DefaultDir(), "workouts.db")
	default:
		return filepath.Join(DefaultDir(), "workouts.json")
	}
}
