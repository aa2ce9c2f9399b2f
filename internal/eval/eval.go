package eval

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqljudge/internal/clause"
	"github.com/leapstack-labs/sqljudge/internal/compare"
)

// componentCorrectThreshold is the F1 score at or above which a clause
// counts as correct in the per-component tallies.
const componentCorrectThreshold = 0.8

// CaseResult is the outcome of scoring one case.
type CaseResult struct {
	ID        string          `json:"id,omitempty"`
	Question  string          `json:"question,omitempty"`
	Predicted string          `json:"predicted"`
	Reference string          `json:"reference"`
	SyntaxOK  bool            `json:"syntax_ok"`
	Report    *compare.Report `json:"report"`
}

// Tally counts how often a clause scored at or above the correctness
// threshold out of the cases where it appeared.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Summary aggregates a batch run: per-clause tallies, overall means of
// every clause score observed across the batch, and the per-case results.
type Summary struct {
	RunID               string                `json:"run_id"`
	StartedAt           time.Time             `json:"started_at"`
	Duration            time.Duration         `json:"duration"`
	Total               int                   `json:"total"`
	SyntaxCorrect       int                   `json:"syntax_correct"`
	Components          map[clause.Kind]Tally `json:"component_matches"`
	Overall             compare.Scores        `json:"overall"`
	MeanTableSimilarity float64               `json:"mean_table_similarity"`
	Results             []CaseResult          `json:"results"`
}

// Runner scores datasets. Concurrency bounds the number of cases scored
// in parallel; zero or negative means sequential.
type Runner struct {
	Concurrency int
	Logger      *slog.Logger
}

// NewRunner creates a runner. If logger is nil, a discard logger is used.
func NewRunner(concurrency int, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{Concurrency: concurrency, Logger: logger}
}

// Run scores every case in the dataset and aggregates the results.
// Case order is preserved in the summary regardless of concurrency.
func (r *Runner) Run(ctx context.Context, ds *Dataset) (*Summary, error) {
	started := time.Now()
	results := make([]CaseResult, len(ds.Cases))

	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range ds.Cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := ds.Cases[i]
			results[i] = CaseResult{
				ID:        c.ID,
				Question:  c.Question,
				Predicted: c.Predicted,
				Reference: c.Reference,
				SyntaxOK:  syntaxOK(c.Predicted),
				Report:    compare.Compare(c.Predicted, c.Reference),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := r.summarize(results)
	summary.StartedAt = started
	summary.Duration = time.Since(started)

	r.Logger.Info("evaluation finished",
		slog.String("run_id", summary.RunID),
		slog.Int("total", summary.Total),
		slog.Float64("overall_f1", summary.Overall.F1))

	return summary, nil
}

func (r *Runner) summarize(results []CaseResult) *Summary {
	summary := &Summary{
		RunID:      uuid.NewString(),
		Total:      len(results),
		Components: make(map[clause.Kind]Tally),
		Results:    results,
	}

	var precisions, recalls, f1s []float64
	var tableSum float64

	for _, result := range results {
		if result.SyntaxOK {
			summary.SyntaxCorrect++
		}
		tableSum += result.Report.TableSimilarity

		for kind, metrics := range result.Report.Components {
			tally := summary.Components[kind]
			tally.Total++
			if metrics.F1 >= componentCorrectThreshold {
				tally.Correct++
			}
			summary.Components[kind] = tally

			precisions = append(precisions, metrics.Precision)
			recalls = append(recalls, metrics.Recall)
			f1s = append(f1s, metrics.F1)
		}
	}

	summary.Overall = compare.Scores{
		Precision: mean(precisions),
		Recall:    mean(recalls),
		F1:        mean(f1s),
	}
	if len(results) > 0 {
		summary.MeanTableSimilarity = tableSum / float64(len(results))
	}

	return summary
}

// syntaxOK is a shallow check: the statement is non-empty and starts
// with SELECT or WITH.
func syntaxOK(sql string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(sql))
	return strings.HasPrefix(trimmed, "select") || strings.HasPrefix(trimmed, "with")
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
