// Package commands implements the sqljudge subcommands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqljudge/internal/clause"
	"github.com/leapstack-labs/sqljudge/internal/cli/config"
	"github.com/leapstack-labs/sqljudge/internal/compare"
)

// readSQLArg reads a SQL argument, either as literal text or from a file.
func readSQLArg(arg string, inline bool) (string, error) {
	if inline {
		return arg, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("failed to read SQL file: %w", err)
	}
	return string(data), nil
}

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	var inline bool

	cmd := &cobra.Command{
		Use:   "compare <predicted> <reference>",
		Short: "Compare two SQL statements structurally",
		Long: `Compare a predicted SQL statement against a reference statement.

Both statements are split into clauses (SELECT, FROM, WHERE, ...), each
clause is normalized and scored with precision, recall and F1, and table
references are compared with Jaccard similarity.

Arguments are file paths by default; pass --inline to supply SQL text
directly.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			predicted, err := readSQLArg(args[0], inline)
			if err != nil {
				return err
			}
			reference, err := readSQLArg(args[1], inline)
			if err != nil {
				return err
			}

			report := compare.Compare(predicted, reference)
			return renderReport(cmd.OutOrStdout(), report, config.GetCurrentConfig().OutputFormat)
		},
	}

	cmd.Flags().BoolVarP(&inline, "inline", "e", false, "Treat arguments as SQL text instead of file paths")
	return cmd
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var inline bool

	cmd := &cobra.Command{
		Use:   "tables <sql>",
		Short: "List the tables a SQL statement references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlText, err := readSQLArg(args[0], inline)
			if err != nil {
				return err
			}
			return renderTables(cmd.OutOrStdout(), clause.Tables(sqlText), config.GetCurrentConfig().OutputFormat)
		},
	}

	cmd.Flags().BoolVarP(&inline, "inline", "e", false, "Treat the argument as SQL text instead of a file path")
	return cmd
}
