package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/sqljudge/internal/clause"
	"github.com/leapstack-labs/sqljudge/internal/compare"
	"github.com/leapstack-labs/sqljudge/internal/eval"
	"github.com/leapstack-labs/sqljudge/internal/relgraph"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderReport(w io.Writer, report *compare.Report, format string) error {
	if format == "json" {
		return renderJSON(w, report)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Clause", "Precision", "Recall", "F1", "Predicted", "Reference"})

	for _, kind := range clause.Kinds {
		metrics, ok := report.Components[kind]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{
			strings.ToUpper(string(kind)),
			formatScore(metrics.Precision),
			formatScore(metrics.Recall),
			formatScore(metrics.F1),
			strings.Join(metrics.PredictedItems, ", "),
			strings.Join(metrics.ReferenceItems, ", "),
		})
	}
	t.Render()

	_, _ = fmt.Fprintf(w, "Overall: precision=%s recall=%s f1=%s\n",
		formatScore(report.Overall.Precision),
		formatScore(report.Overall.Recall),
		formatScore(report.Overall.F1))
	_, _ = fmt.Fprintf(w, "Table similarity: %s (predicted: %s; reference: %s)\n",
		formatScore(report.TableSimilarity),
		formatTables(report.PredictedTables),
		formatTables(report.ReferenceTables))
	return nil
}

func renderTables(w io.Writer, tables []string, format string) error {
	if format == "json" {
		return renderJSON(w, map[string][]string{"tables": tables})
	}
	if len(tables) == 0 {
		_, _ = fmt.Fprintln(w, "(no tables)")
		return nil
	}
	for _, name := range tables {
		_, _ = fmt.Fprintln(w, name)
	}
	return nil
}

func renderPaths(w io.Writer, source, target string, paths []relgraph.JoinPath, format string) error {
	if format == "json" {
		return renderJSON(w, map[string]any{
			"source": source,
			"target": target,
			"paths":  paths,
		})
	}

	if len(paths) == 0 {
		_, _ = fmt.Fprintf(w, "No join path from %s to %s\n", source, target)
		return nil
	}

	for i, path := range paths {
		_, _ = fmt.Fprintf(w, "Path %d (length %d):\n", i+1, path.PathLength)
		if path.PathLength == 0 {
			_, _ = fmt.Fprintf(w, "  %s is the target table\n", source)
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(path.RenderJoins(), "\n"), "\n") {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

func renderSummary(w io.Writer, summary *eval.Summary, format string) error {
	if format == "json" {
		return renderJSON(w, summary)
	}

	_, _ = fmt.Fprintf(w, "Run %s: %d cases, %d syntactically valid\n",
		summary.RunID, summary.Total, summary.SyntaxCorrect)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Clause", "Correct", "Total"})

	for _, kind := range clause.Kinds {
		tally, ok := summary.Components[kind]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{strings.ToUpper(string(kind)), tally.Correct, tally.Total})
	}
	t.Render()

	_, _ = fmt.Fprintf(w, "Overall: precision=%s recall=%s f1=%s\n",
		formatScore(summary.Overall.Precision),
		formatScore(summary.Overall.Recall),
		formatScore(summary.Overall.F1))
	_, _ = fmt.Fprintf(w, "Mean table similarity: %s\n", formatScore(summary.MeanTableSimilarity))
	return nil
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func formatTables(tables []string) string {
	if len(tables) == 0 {
		return "none"
	}
	return strings.Join(tables, ", ")
}
