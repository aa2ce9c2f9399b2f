package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqljudge/internal/cli/config"
	"github.com/leapstack-labs/sqljudge/internal/eval"
	"github.com/leapstack-labs/sqljudge/internal/state"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "eval <dataset>",
		Short: "Score a dataset of predicted vs reference SQL",
		Long: `Score every case in a dataset file and print aggregate metrics.

A clause counts as correct when its F1 score is at least 0.8. Pass --save
to record the run in the state database for later inspection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetCurrentConfig()
			logger := config.GetLogger(cmd.Context())

			ds, err := eval.LoadDatasetFile(args[0])
			if err != nil {
				return err
			}

			runner := eval.NewRunner(cfg.Concurrency, logger)
			summary, err := runner.Run(cmd.Context(), ds)
			if err != nil {
				return err
			}

			if save {
				if err := saveRun(cfg.StatePath, args[0], summary); err != nil {
					return err
				}
				logger.Info("run saved", "run_id", summary.RunID, "state", cfg.StatePath)
			}

			return renderSummary(cmd.OutOrStdout(), summary, cfg.OutputFormat)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Record the run in the state database")
	return cmd
}

func saveRun(statePath, dataset string, summary *eval.Summary) error {
	stateDir := filepath.Dir(statePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0o750); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(statePath); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.InitSchema(); err != nil {
		return err
	}
	return store.SaveRun(dataset, summary)
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved evaluation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetCurrentConfig()

			store := state.NewSQLiteStore()
			if err := store.Open(cfg.StatePath); err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.InitSchema(); err != nil {
				return err
			}

			records, err := store.ListRuns(limit)
			if err != nil {
				return err
			}

			if cfg.OutputFormat == "json" {
				return renderJSON(cmd.OutOrStdout(), records)
			}

			w := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(w, "(no runs)")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(w, "%s  %s  cases=%d f1=%.3f  %s\n",
					r.StartedAt.Format("2006-01-02 15:04:05"), r.ID, r.Total, r.OverallF1, r.Dataset)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}
