// Package config loads pypin settings.
//
// Sources are applied in increasing precedence:
//
//  1. built-in defaults ([Default])
//  2. a TOML file: the --config path, or $XDG_CONFIG_HOME/pypin/config.toml
//  3. PYPIN_* environment variables
//  4. command-line flags (applied by the caller)
//
// A missing default config file is not an error; a missing explicit one is.
//
// Example config.toml:
//
//	timeout    = "15s"
//	cache_ttl  = "6h"
//	redis_url  = "redis://localhost:6379/0"
//	user_agent = "acme-ci/1.0"
//	addr       = ":9090"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pypin/pkg/buildinfo"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 24 * time.Hour
	DefaultAddr     = ":8080"
)

// Duration is a time.Duration written as a string ("10s", "24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds every tunable setting.
type Config struct {
	Timeout   Duration `toml:"timeout"`    // per-request timeout against the index
	CacheTTL  Duration `toml:"cache_ttl"`  // freshness of stored release sets
	CacheDir  string   `toml:"cache_dir"`  // file store location
	RedisURL  string   `toml:"redis_url"`  // use redis instead of files when set
	UserAgent string   `toml:"user_agent"` // sent to the index
	Addr      string   `toml:"addr"`       // listen address for `pypin serve`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timeout:   Duration{DefaultTimeout},
		CacheTTL:  Duration{DefaultCacheTTL},
		CacheDir:  DefaultCacheDir(),
		UserAgent: buildinfo.UserAgent(),
		Addr:      DefaultAddr,
	}
}

// Load builds a Config from defaults, the config file and the environment.
// path may be empty to use the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Timeout.Duration = getenvDuration("PYPIN_TIMEOUT", c.Timeout.Duration)
	c.CacheTTL.Duration = getenvDuration("PYPIN_CACHE_TTL", c.CacheTTL.Duration)
	c.CacheDir = getenv("PYPIN_CACHE_DIR", c.CacheDir)
	c.RedisURL = getenv("PYPIN_REDIS_URL", c.RedisURL)
	c.UserAgent = getenv("PYPIN_USER_AGENT", c.UserAgent)
	c.Addr = getenv("PYPIN_ADDR", c.Addr)
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.CacheTTL.Duration < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/pypin/config.toml, falling back to
// ~/.config. It returns "" if no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "pypin", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pypin", "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/pypin, falling back to ~/.cache/pypin.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "pypin")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pypin")
	}
	return filepath.Join(home, ".cache", "pypin")
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
