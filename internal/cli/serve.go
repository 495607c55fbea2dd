package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/posterkit/posterkit/internal/api"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config string // TOML configuration file path
	addr   string // listen address override
}

// newServeCmd creates the serve command for running the HTTP rendering API.
//
// Configuration comes from a TOML file (--config); the --addr flag overrides
// the file's listen address. Without a file the server uses defaults: listen
// on :3000, write files to the OS temp dir, no output caching.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP rendering API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe loads the configuration, opens the output cache, and runs the
// server until the context is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg := api.DefaultConfig()
	if opts.config != "" {
		var err error
		cfg, err = api.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		logger.Debugf("Loaded config from %s", opts.config)
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}

	c, err := cfg.OpenCache(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	printInfo("Starting posterkit API")
	printKeyValue("address", cfg.Addr)
	printKeyValue("output", cfg.OutputDir)
	printKeyValue("cache", cfg.Cache.Backend)
	if cfg.Cache.Backend == api.BackendNone {
		printWarning("Render output caching is disabled")
	}

	srv := api.NewServer(cfg, c, logger)
	err = srv.ListenAndServe(ctx)
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		logger.Info("Server stopped")
		return nil
	}
	return err
}
