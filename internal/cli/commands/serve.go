package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqljudge/internal/cli/config"
	"github.com/leapstack-labs/sqljudge/internal/relgraph"
	"github.com/leapstack-labs/sqljudge/internal/schema"
	"github.com/leapstack-labs/sqljudge/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve comparison and join-path queries over HTTP",
		Long: `Start the HTTP API server.

POST /api/compare scores a predicted statement against a reference.
POST /api/paths finds join paths through the configured schema; it
requires a schema to be configured. GET /healthz reports liveness.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetCurrentConfig()
			logger := config.GetLogger(cmd.Context())

			var snap *schema.Snapshot
			var graph *relgraph.Graph
			if cfg.SchemaPath != "" {
				var err error
				snap, err = schema.LoadFile(cfg.SchemaPath)
				if err != nil {
					return err
				}
				graph = relgraph.Build(snap)
				logger.Info("schema loaded",
					"path", cfg.SchemaPath,
					"tables", len(snap.Tables),
					"edges", graph.EdgeCount())
			} else {
				logger.Warn("no schema configured; path queries will be rejected")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(server.Config{
				Port:     cfg.Server.Port,
				Snapshot: snap,
				Graph:    graph,
				Logger:   logger,
			})
			return srv.Serve(ctx)
		},
	}
}
