package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/api"
	"github.com/matzehuels/bpmnlayout/pkg/config"
	"github.com/matzehuels/bpmnlayout/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The cache backend (none, file, redis) and the layout store (none, memory,
mongo) are selected in the config file or with BPMNLAYOUT_REDIS_URL and
BPMNLAYOUT_MONGO_URI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	runner, err := c.newRunner(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	timeout, _ := cfg.RequestTimeout()
	srv := api.New(runner, st, c.Logger, api.Options{
		Layout:         cfg.LayoutOptions(),
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RequestTimeout: timeout,
	})
	c.Logger.Info("starting server", "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

// openStore opens the configured layout store; it returns nil when storage
// is disabled.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreMongo:
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	return nil, nil
}
