package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bubbletreemap/internal/server"
	"github.com/matzehuels/bubbletreemap/pkg/observability/metrics"
	"github.com/matzehuels/bubbletreemap/pkg/storage"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		storeDir string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Layouts created through the API are stored in MongoDB when server.mongo_uri
is configured, in --store-dir when given, and in memory otherwise. Metrics
are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), storeDir, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "store layouts as files in this directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, storeDir string, noCache bool) error {
	store, err := c.newStore(ctx, storeDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	metrics.New(prometheus.DefaultRegisterer).Install()
	go c.cleanupLoop(ctx, store)

	defaults := c.baseOptions()
	defaults.Logger = nil
	srv := server.New(runner, store, c.Logger, server.Config{
		Addr:         c.cfg.Server.Addr,
		Timeout:      c.cfg.Server.Timeout.Duration,
		MaxBodyBytes: c.cfg.Server.MaxBodyBytes,
		Defaults:     defaults,
	})

	printInfo("Serving on %s", StyleHighlight.Render(c.cfg.Server.Addr))
	return srv.ListenAndServe(ctx)
}

func (c *CLI) newStore(ctx context.Context, dir string) (storage.Store, error) {
	switch {
	case c.cfg.Server.MongoURI != "":
		c.Logger.Info("using mongo store", "database", c.cfg.Server.MongoDatabase)
		return storage.NewMongoStore(ctx, c.cfg.Server.MongoURI, c.cfg.Server.MongoDatabase)
	case dir != "":
		c.Logger.Info("using file store", "dir", dir)
		return storage.NewFileStore(dir)
	default:
		c.Logger.Warn("using in-memory store; layouts are lost on restart")
		return storage.NewMemoryStore(), nil
	}
}

// cleanupLoop drops expired layouts hourly until ctx is done.
func (c *CLI) cleanupLoop(ctx context.Context, store storage.Store) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Cleanup(ctx); err != nil {
				c.Logger.Warn("store cleanup failed", "err", err)
			}
		}
	}
}
