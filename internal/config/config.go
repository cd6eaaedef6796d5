// Package config loads proyo's settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all proyo configuration. Environment variables override the
// file, which overrides DefaultConfig.
type Config struct {
	Store         StoreConfig         `toml:"store"`
	LLM           LLMConfig           `toml:"llm"`
	Coach         CoachConfig         `toml:"coach"`
	Logging       LoggingConfig       `toml:"logging"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// StoreConfig controls the SQLite database.
type StoreConfig struct {
	Path          string `toml:"path" env:"PROYO_DB"`
	KeepSnapshots int    `toml:"keep_snapshots" env:"PROYO_KEEP_SNAPSHOTS"`
}

// LLMConfig selects the text-generation provider. Empty fields fall back to
// the provider's standard environment variables.
type LLMConfig struct {
	Provider   string        `toml:"provider" env:"PROYO_LLM_PROVIDER"`
	Model      string        `toml:"model" env:"PROYO_LLM_MODEL"`
	APIKey     string        `toml:"api_key" env:"PROYO_LLM_API_KEY"`
	BaseURL    string        `toml:"base_url" env:"PROYO_LLM_BASE_URL"`
	MaxRetries int           `toml:"max_retries" env:"PROYO_LLM_MAX_RETRIES"`
	Timeout    time.Duration `toml:"timeout" env:"PROYO_LLM_TIMEOUT"`
}

// CoachConfig controls the AI collaborators.
type CoachConfig struct {
	Enabled bool          `toml:"enabled" env:"PROYO_COACH_ENABLED"`
	Timeout time.Duration `toml:"timeout" env:"PROYO_COACH_TIMEOUT"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level" env:"PROYO_LOG_LEVEL"`
	// File receives logs instead of stderr when set.
	File string `toml:"file" env:"PROYO_LOG_FILE"`
}

// NotificationsConfig is the platform permission for notifications.
type NotificationsConfig struct {
	Enabled bool `toml:"enabled" env:"PROYO_NOTIFICATIONS"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			KeepSnapshots: 50,
		},
		LLM: LLMConfig{
			MaxRetries: 3,
			Timeout:    30 * time.Second,
		},
		Coach: CoachConfig{
			Enabled: true,
			Timeout: 20 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/proyo/config.toml, or
// ~/.config/proyo/config.toml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "proyo", "config.toml")
}

// Load reads path (DefaultPath when empty) over the defaults and then applies
// the PROYO_* environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Store.KeepSnapshots < 1 {
		return fmt.Errorf("store.keep_snapshots must be at least 1, got %d", c.Store.KeepSnapshots)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must not be negative, got %d", c.LLM.MaxRetries)
	}
	if c.Coach.Timeout <= 0 {
		return fmt.Errorf("coach.timeout must be positive, got %s", c.Coach.Timeout)
	}
	return nil
}
