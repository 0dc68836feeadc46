// Package config loads shopd settings with koanf.
// Priority: flag overrides > environment (SHOPD_*) > --config file >
// user config (~/.config/shopd/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sandeepkv93/shopd/internal/logging"
	"github.com/sandeepkv93/shopd/internal/storage"
)

const EnvPrefix = "SHOPD_"

type Config struct {
	// Backend selects the store: file, sqlite, redis or memory.
	Backend    string `koanf:"backend"`
	File       string `koanf:"file"`
	SQLitePath string `koanf:"sqlite_path"`
	RedisURL   string `koanf:"redis_url"`
	RedisKey   string `koanf:"redis_key"`

	LogLevel string `koanf:"log_level"`
	// LogFile receives logs from the interactive UI; empty disables them there.
	LogFile string `koanf:"log_file"`

	// Watch reloads the TUI when another process rewrites the list file.
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
	// PollInterval paces change detection for sqlite and redis stores.
	PollInterval time.Duration `koanf:"poll_interval"`
}

type LoadOptions struct {
	// ConfigPath is an explicit config file; it must exist when set.
	ConfigPath string
	// UserConfigPath overrides the per-user config location (tests).
	UserConfigPath string
	// Overrides are applied last, keyed like the koanf tags.
	Overrides map[string]any
}

func Defaults() map[string]any {
	return map[string]any{
		"backend":        storage.BackendFile,
		"file":           storage.DefaultFilePath,
		"sqlite_path":    "shopping_list.db",
		"redis_url":      "",
		"redis_key":      storage.DefaultRedisKey,
		"log_level":      "warn",
		"log_file":       "",
		"watch":          true,
		"watch_debounce": "150ms",
		"poll_interval":  "2s",
	}
}

func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	if fileExists(userPath) {
		if err := loadFile(k, userPath); err != nil {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return nil, fmt.Errorf("config file %s not found", opts.ConfigPath)
		}
		if err := loadFile(k, opts.ConfigPath); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set override %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = expandHomePath(cfg.File)
	cfg.SQLitePath = expandHomePath(cfg.SQLitePath)
	cfg.LogFile = expandHomePath(cfg.LogFile)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case storage.BackendFile:
		if strings.TrimSpace(c.File) == "" {
			return fmt.Errorf("file: must not be empty for the file backend")
		}
	case storage.BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path: must not be empty for the sqlite backend")
		}
	case storage.BackendRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("redis_url: must not be empty for the redis backend")
		}
	case storage.BackendMemory:
	default:
		return fmt.Errorf("backend: unknown value %q (want file, sqlite, redis or memory)", c.Backend)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce: must not be negative")
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll_interval: must not be negative")
	}
	return nil
}

func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:    c.Backend,
		FilePath:   c.File,
		SQLitePath: c.SQLitePath,
		RedisURL:   c.RedisURL,
		RedisKey:   c.RedisKey,
	}
}

// WatchesFile reports whether a file watcher makes sense for this setup.
func (c *Config) WatchesFile() bool {
	return c.Watch && strings.EqualFold(strings.TrimSpace(c.Backend), storage.BackendFile)
}

// PollsStore reports whether the store should be re-read on an interval to
// notice writes from other processes.
func (c *Config) PollsStore() bool {
	if !c.Watch || c.PollInterval == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case storage.BackendSQLite, storage.BackendRedis:
		return true
	default:
		return false
	}
}

func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shopd", "config.yml")
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = yaml.Parser()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parser = json.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform maps SHOPD_REDIS_URL to redis_url.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
