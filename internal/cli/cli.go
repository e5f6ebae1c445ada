// Package cli implements the bpmnlayout command-line interface.
//
// # Commands
//
//   - layout: Compute a diagram layout for a process file
//   - relayout: Expand or collapse sub-processes of an existing layout
//   - render: Render a layout file to an SVG preview
//   - dot: Export the process graph as Graphviz DOT (or SVG via Graphviz)
//   - inspect: Browse the shapes of a layout file
//   - serve: Run the HTTP API
//   - cache: Manage the local layout cache
//
// # Configuration
//
// Settings come from built-in defaults, the file given with --config
// (TOML or YAML), a .env file in the working directory and BPMNLAYOUT_*
// environment variables, in that order. See package config.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/buildinfo"
	"github.com/matzehuels/bpmnlayout/pkg/cache"
	"github.com/matzehuels/bpmnlayout/pkg/config"
	"github.com/matzehuels/bpmnlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "bpmnlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "bpmnlayout computes diagram layouts for BPMN processes",
		Long:         `bpmnlayout assigns coordinates to the shapes of a BPMN process, routes its sequence flows orthogonally and places labels, producing a layout that diagram editors can display.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.relayoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads .env, the --config file and the environment.
func (c *CLI) loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "file", c.configPath, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return cfg, nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.Prefix)
	}
	r := pipeline.NewRunner(cc, keyer, c.Logger)
	if ttl, _ := cfg.CacheTTL(); ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

// newCache opens the configured cache backend. An unusable file cache
// directory degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		var rc *cache.RedisCache
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			rc, err = cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
			return err
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case config.CacheFile:
		if cfg.Cache.Dir == "" {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable", "dir", cfg.Cache.Dir, "error", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
	return cache.NewNullCache(), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
