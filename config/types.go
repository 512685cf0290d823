package config

import "time"

type Config struct {
	Backend Backend `mapstructure:"backend"`
	State   State   `mapstructure:"state"`
	Cache   Cache   `mapstructure:"cache"`
	Search  Search  `mapstructure:"search"`
	Auth    Auth    `mapstructure:"auth"`
	Console Console `mapstructure:"console"`
	Logging Logging `mapstructure:"logging"`
}

// Backend is the clinic REST API this console talks to.
type Backend struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (b Backend) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// State holds durable workstation-local files (session snapshot).
type State struct {
	Dir string `mapstructure:"dir"`
}

// Cache controls the read-side freshness window. A performance
// discipline, not a correctness guarantee.
type Cache struct {
	FreshnessSeconds int `mapstructure:"freshness_seconds"`
}

func (c Cache) Freshness() time.Duration {
	if c.FreshnessSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FreshnessSeconds) * time.Second
}

// Search bounds request volume for interactive lookups.
type Search struct {
	DebounceMs int `mapstructure:"debounce_ms"`
}

func (s Search) Debounce() time.Duration {
	if s.DebounceMs <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(s.DebounceMs) * time.Millisecond
}

type Auth struct {
	// PermissionFetchMaxTries bounds the retried my-permissions fetch
	// right after login. Scheduling operations are never retried.
	PermissionFetchMaxTries int       `mapstructure:"permission_fetch_max_tries"`
	DevBypass               DevBypass `mapstructure:"dev_bypass"`
}

// DevBypass seeds a session without a credential exchange.
// Development only; the backend still rejects a fake credential.
type DevBypass struct {
	Enabled      bool     `mapstructure:"enabled"`
	Credential   string   `mapstructure:"credential"`
	Email        string   `mapstructure:"email"`
	Capabilities []string `mapstructure:"capabilities"`
}

type Console struct {
	Environment string `mapstructure:"environment"`
}

type Logging struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
	Output Output `mapstructure:"output"`
}

type Output struct {
	Stdout bool    `mapstructure:"stdout"`
	File   FileLog `mapstructure:"file"`
	Loki   Loki    `mapstructure:"loki"`
}

type FileLog struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type Loki struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return ErrMissingBackendURL
	}
	return nil
}
