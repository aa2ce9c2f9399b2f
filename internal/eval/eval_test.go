package eval

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqljudge/internal/clause"
	"github.com/leapstack-labs/sqljudge/internal/testutil"
)

const sampleDataset = `
name: smoke
cases:
  - id: exact
    question: How many users are there?
    predicted: SELECT COUNT(id) FROM users
    reference: SELECT COUNT(id) FROM users
  - id: missing-where
    predicted: SELECT name FROM users
    reference: SELECT name FROM users WHERE active = 1
  - id: empty-prediction
    predicted: ""
    reference: SELECT id FROM users
`

func TestLoadDataset(t *testing.T) {
	ds, err := LoadDataset([]byte(sampleDataset))
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	if ds.Name != "smoke" {
		t.Errorf("expected name smoke, got %q", ds.Name)
	}
	if len(ds.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(ds.Cases))
	}
	if ds.Cases[0].ID != "exact" || ds.Cases[0].Question == "" {
		t.Errorf("unexpected first case: %+v", ds.Cases[0])
	}
}

func TestLoadDataset_MissingReference(t *testing.T) {
	_, err := LoadDataset([]byte("cases:\n  - predicted: SELECT 1\n"))
	if err == nil {
		t.Error("expected error for a case without reference SQL")
	}
}

func TestLoadDatasetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.yaml")
	if err := os.WriteFile(path, []byte(sampleDataset), 0o600); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadDatasetFile(path)
	if err != nil {
		t.Fatalf("failed to load dataset file: %v", err)
	}
	if len(ds.Cases) != 3 {
		t.Errorf("expected 3 cases, got %d", len(ds.Cases))
	}

	if _, err := LoadDatasetFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRun(t *testing.T) {
	ds, err := LoadDataset([]byte(sampleDataset))
	if err != nil {
		t.Fatal(err)
	}

	summary, err := NewRunner(2, testutil.NewTestLogger(t)).Run(context.Background(), ds)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if summary.RunID == "" {
		t.Error("expected a run id")
	}
	if summary.Total != 3 {
		t.Errorf("expected 3 cases, got %d", summary.Total)
	}
	// The empty prediction fails the syntax check; the others pass.
	if summary.SyntaxCorrect != 2 {
		t.Errorf("expected 2 syntactically correct cases, got %d", summary.SyntaxCorrect)
	}

	// SELECT appears in all three comparisons; it clears the threshold in
	// the first two and scores zero against the empty prediction.
	sel, ok := summary.Components[clause.KindSelect]
	if !ok {
		t.Fatal("expected SELECT tally")
	}
	if sel.Total != 3 || sel.Correct != 2 {
		t.Errorf("unexpected SELECT tally: %+v", sel)
	}

	// WHERE appears only in the missing-where case and scores zero there.
	where, ok := summary.Components[clause.KindWhere]
	if !ok {
		t.Fatal("expected WHERE tally")
	}
	if where.Total != 1 || where.Correct != 0 {
		t.Errorf("unexpected WHERE tally: %+v", where)
	}

	if summary.Overall.F1 <= 0 || summary.Overall.F1 >= 1 {
		t.Errorf("expected overall f1 strictly between 0 and 1, got %f", summary.Overall.F1)
	}
	if summary.MeanTableSimilarity <= 0 || summary.MeanTableSimilarity > 1 {
		t.Errorf("mean table similarity out of range: %f", summary.MeanTableSimilarity)
	}
}

func TestRun_OrderPreserved(t *testing.T) {
	ds := &Dataset{}
	for i := 0; i < 20; i++ {
		ds.Cases = append(ds.Cases, Case{
			ID:        string(rune('a' + i)),
			Predicted: "SELECT x FROM t",
			Reference: "SELECT x FROM t",
		})
	}

	summary, err := NewRunner(8, nil).Run(context.Background(), ds)
	if err != nil {
		t.Fatal(err)
	}
	for i, result := range summary.Results {
		if result.ID != ds.Cases[i].ID {
			t.Fatalf("result %d out of order: got id %q", i, result.ID)
		}
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := &Dataset{Cases: []Case{{Predicted: "SELECT 1", Reference: "SELECT 1"}}}
	if _, err := NewRunner(1, nil).Run(ctx, ds); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRun_EmptyDataset(t *testing.T) {
	summary, err := NewRunner(0, nil).Run(context.Background(), &Dataset{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 0 || summary.Overall.F1 != 0 || summary.MeanTableSimilarity != 0 {
		t.Errorf("unexpected summary for empty dataset: %+v", summary)
	}
}

func TestSyntaxOK(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT 1", true},
		{"  with cte AS (SELECT 1) SELECT * FROM cte", true},
		{"", false},
		{"   ", false},
		{"DELETE FROM users", false},
	}
	for _, tt := range tests {
		if got := syntaxOK(tt.sql); got != tt.want {
			t.Errorf("syntaxOK(%q) = %v, want %v", tt.sql, got, tt.want)
		}
	}
}
