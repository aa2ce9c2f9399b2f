package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqljudge/internal/cli/config"
	"github.com/leapstack-labs/sqljudge/internal/relgraph"
	"github.com/leapstack-labs/sqljudge/internal/schema"
)

// loadConfiguredSnapshot loads the schema snapshot named in the config.
func loadConfiguredSnapshot() (*schema.Snapshot, error) {
	cfg := config.GetCurrentConfig()
	if cfg.SchemaPath == "" {
		return nil, fmt.Errorf("no schema configured: set schema_path or pass --schema")
	}
	return schema.LoadFile(cfg.SchemaPath)
}

// NewPathsCommand creates the paths command.
func NewPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths <source-table> <target-table>",
		Short: "Find join paths between two tables",
		Long: `Find join paths between two tables using the configured schema.

Relationships come from declared foreign keys plus a naming-convention
heuristic for columns ending in _id. The result is rendered as INNER JOIN
fragments ready to paste into a query.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadConfiguredSnapshot()
			if err != nil {
				return err
			}

			source, target := args[0], args[1]
			graph := relgraph.Build(snap)
			for _, name := range []string{source, target} {
				if !graph.HasTable(name) {
					return fmt.Errorf("unknown table: %s", name)
				}
			}

			paths, err := graph.FindPaths(source, target)
			if err != nil {
				return err
			}
			return renderPaths(cmd.OutOrStdout(), source, target, paths, config.GetCurrentConfig().OutputFormat)
		},
	}
}
