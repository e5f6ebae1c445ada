package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/cache"
	"github.com/matzehuels/bpmnlayout/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.clearCache(cmd.Context(), cfg)
		},
	}
}

func (c *CLI) clearCache(ctx context.Context, cfg *config.Config) error {
	if cfg.Cache.Backend == config.CacheNone {
		printInfo("Caching is disabled")
		return nil
	}
	cc, err := c.newCache(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer cc.Close()

	clearer, ok := cc.(cache.Clearer)
	if !ok {
		printWarning("The %s cache cannot be cleared", cfg.Cache.Backend)
		return nil
	}
	if err := clearer.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cleared the %s cache", cfg.Cache.Backend)
	if fc, ok := cc.(*cache.FileCache); ok {
		printDetail("Directory: %s", fc.Dir())
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			switch cfg.Cache.Backend {
			case config.CacheFile:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Dir)
			case config.CacheRedis:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.RedisURL)
			default:
				printKeyValue("backend", cfg.Cache.Backend)
			}
			return nil
		},
	}
}
