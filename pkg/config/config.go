// Package config loads bpmnlayout settings from TOML or YAML files, a
// .env file and environment variables.
//
// Precedence, lowest first:
//
//  1. [Default] values
//  2. the config file (.toml, or .yaml/.yml)
//  3. variables from .env files (never overriding the real environment)
//  4. BPMNLAYOUT_* environment variables
//
// Example bpmnlayout.toml:
//
//	[layout]
//	horizontal_spacing = 80
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// appName is used for default directories.
const appName = "bpmnlayout"

// Environment variables that override file settings.
const (
	EnvRedisURL = "BPMNLAYOUT_REDIS_URL"
	EnvMongoURI = "BPMNLAYOUT_MONGO_URI"
	EnvCacheDir = "BPMNLAYOUT_CACHE_DIR"
	EnvAddr     = "BPMNLAYOUT_ADDR"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Store backends.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// =============================================================================
// Config Types
// =============================================================================

// Config is the complete application configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Store  StoreConfig  `toml:"store" yaml:"store"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// LayoutConfig mirrors the tunable fields of layout.Options. Zero values
// fall back to the engine defaults.
type LayoutConfig struct {
	HorizontalSpacing float64 `toml:"horizontal_spacing" yaml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing" yaml:"vertical_spacing"`
	CharWidth         float64 `toml:"char_width" yaml:"char_width"`
	LabelHeight       float64 `toml:"label_height" yaml:"label_height"`
	LabelGap          float64 `toml:"label_gap" yaml:"label_gap"`
	BackEdgeClearance float64 `toml:"back_edge_clearance" yaml:"back_edge_clearance"`
	SubProcessPadding float64 `toml:"subprocess_padding" yaml:"subprocess_padding"`
	Workers           int     `toml:"workers" yaml:"workers"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend" yaml:"backend"` // none, file or redis
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	TTL      string `toml:"ttl" yaml:"ttl"`       // Go duration, e.g. "24h"
	Prefix   string `toml:"prefix" yaml:"prefix"` // Key namespace for shared backends
}

// StoreConfig selects and configures the layout store of the API server.
type StoreConfig struct {
	Backend    string `toml:"backend" yaml:"backend"` // none, memory or mongo
	MongoURI   string `toml:"mongo_uri" yaml:"mongo_uri"`
	Database   string `toml:"database" yaml:"database"`
	Collection string `toml:"collection" yaml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string `toml:"addr" yaml:"addr"`
	RequestTimeout string `toml:"request_timeout" yaml:"request_timeout"`
	MaxBodyBytes   int64  `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: CacheFile,
			Dir:     DefaultCacheDir(),
			TTL:     "168h",
		},
		Store: StoreConfig{Backend: StoreMemory},
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: "30s",
			MaxBodyBytes:   4 << 20,
		},
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the config file at path (if non-empty), then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; existing variables are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "load %s", p)
		}
	}
	return nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return nil
}

// ApplyEnv overrides settings from BPMNLAYOUT_* variables. Setting a Redis
// URL or Mongo URI also selects that backend.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
		c.Cache.Backend = CacheRedis
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Store.MongoURI = v
		c.Store.Backend = StoreMongo
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// =============================================================================
// Validation & Derived Values
// =============================================================================

// Validate checks backend names, URLs and durations.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if err := errs.ValidateURL(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return err
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case StoreNone, StoreMemory:
	case StoreMongo:
		if err := errs.ValidateURL(c.Store.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return err
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}

	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return c.LayoutOptions().Validate()
}

// CacheTTL parses the cache TTL. An empty value means no expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	return parseDuration("cache.ttl", c.Cache.TTL)
}

// RequestTimeout parses the server request timeout. An empty value means
// no timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	return parseDuration("server.request_timeout", c.Server.RequestTimeout)
}

// LayoutOptions builds engine options from the layout section.
func (c *Config) LayoutOptions() layout.Options {
	l := c.Layout
	return layout.Options{
		HorizontalSpacing: l.HorizontalSpacing,
		VerticalSpacing:   l.VerticalSpacing,
		CharWidth:         l.CharWidth,
		LabelHeight:       l.LabelHeight,
		LabelGap:          l.LabelGap,
		BackEdgeClearance: l.BackEdgeClearance,
		SubProcessPadding: l.SubProcessPadding,
		Workers:           l.Workers,
	}
}

func parseDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errs.New(errs.ErrCodeInvalidConfig, "%s: invalid duration %q", name, s)
	}
	return d, nil
}

// DefaultCacheDir returns the cache directory using the XDG convention
// (~/.cache/bpmnlayout/). It returns "" when no home directory is known.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}
