package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqljudge/internal/adapter"
	"github.com/leapstack-labs/sqljudge/internal/cli/config"
	"github.com/leapstack-labs/sqljudge/internal/relgraph"
)

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and extract schema snapshots",
	}

	cmd.AddCommand(newSchemaShowCommand())
	cmd.AddCommand(newSchemaRelationshipsCommand())
	cmd.AddCommand(newSchemaExtractCommand())
	return cmd
}

func newSchemaShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the configured schema as prompt-ready text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := loadConfiguredSnapshot()
			if err != nil {
				return err
			}
			if config.GetCurrentConfig().OutputFormat == "json" {
				return renderJSON(cmd.OutOrStdout(), snap)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), snap.Format())
			return nil
		},
	}
}

func newSchemaRelationshipsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relationships",
		Short: "List the relationship edges of the configured schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := loadConfiguredSnapshot()
			if err != nil {
				return err
			}

			graph := relgraph.Build(snap)
			if config.GetCurrentConfig().OutputFormat == "json" {
				edges := map[string][]relgraph.Edge{}
				for _, name := range graph.Tables() {
					edges[name] = graph.Edges(name)
				}
				return renderJSON(cmd.OutOrStdout(), edges)
			}

			w := cmd.OutOrStdout()
			for _, name := range graph.Tables() {
				for _, edge := range graph.Edges(name) {
					_, _ = fmt.Fprintf(w, "%s.%s -> %s.%s (%s)\n",
						edge.FromTable, edge.JoinColumn,
						edge.ToTable, edge.ReferencedColumn, edge.Kind)
				}
			}
			return nil
		},
	}
}

func newSchemaExtractCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a schema snapshot from a live database",
		Long: `Connect to the database configured under the "database" key and read
its tables, columns, primary keys and foreign keys from information_schema.
The snapshot is written as YAML, suitable for --schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetCurrentConfig()
			if cfg.Database == nil || cfg.Database.Type == "" {
				return fmt.Errorf("no database configured: set the database key in the config file")
			}

			logger := config.GetLogger(cmd.Context())
			a, err := adapter.New(cfg.Database.Type, logger)
			if err != nil {
				return err
			}

			connCfg := adapter.Config{
				Type:     cfg.Database.Type,
				Path:     cfg.Database.Path,
				Host:     cfg.Database.Host,
				Port:     cfg.Database.Port,
				Database: cfg.Database.Name,
				Username: cfg.Database.User,
				Password: cfg.Database.Password,
				Schema:   cfg.Database.Schema,
				Options:  cfg.Database.Options,
			}
			if err := a.Connect(cmd.Context(), connCfg); err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			snap, err := a.ExtractSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(snap)
			if err != nil {
				return fmt.Errorf("failed to encode snapshot: %w", err)
			}

			if out == "" {
				_, _ = cmd.OutOrStdout().Write(data)
				return nil
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			logger.Info("schema snapshot written", "path", out, "tables", len(snap.Tables))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the snapshot to a file instead of stdout")
	return cmd
}
