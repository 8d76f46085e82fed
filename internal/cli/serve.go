package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckroute/internal/server"
	"github.com/matzehuels/deckroute/pkg/cache"
	"github.com/matzehuels/deckroute/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing pipeline over HTTP",
		Long: `Serve the routing pipeline over HTTP.

POST a JSON body with the diagram source to /v1/route:

  curl -s localhost:8080/v1/route -d '{"source": "...", "formats": ["svg"]}'

The response carries the routed document and the rendered artifacts. With
--dir, diagram files below that directory are also rendered on GET:

  curl -s 'localhost:8080/v1/diagrams/deck/arch.toml?format=svg&step=2'

Results
are cached in the configured backend; with a redis cache several servers can
share their results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("addr", server.DefaultAddr, "listen address")
	cmd.Flags().String("dir", "", "directory of diagram files served under /v1/diagrams")
	addCacheFlags(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *Config) error {
	cc, err := c.newCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, "v1:"), c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:       cfg.Serve.Addr,
		Runner:     runner,
		Logger:     c.Logger,
		DiagramDir: cfg.Serve.Dir,
	})
	return srv.Serve(ctx)
}
