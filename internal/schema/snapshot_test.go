package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
database: shop
schema: public
tables:
  - name: customers
    columns:
      - name: id
        type: INTEGER
      - name: customer_name
        type: VARCHAR
    primary_keys: [id]
  - name: orders
    columns:
      - name: id
        type: INTEGER
      - name: customer_id
        type: INTEGER
      - name: order_date
        type: DATE
    primary_keys: [id]
    foreign_keys:
      - column_name: customer_id
        references_table: customers
        references_column: id
`

func TestLoad(t *testing.T) {
	snap, err := Load([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}

	if len(snap.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(snap.Tables))
	}
	if snap.Tables[0].Name != "customers" || snap.Tables[1].Name != "orders" {
		t.Errorf("table order not preserved: %s, %s", snap.Tables[0].Name, snap.Tables[1].Name)
	}

	orders, ok := snap.Table("orders")
	if !ok {
		t.Fatal("expected orders table")
	}
	if len(orders.ForeignKeys) != 1 {
		t.Fatalf("expected 1 foreign key, got %d", len(orders.ForeignKeys))
	}
	fk := orders.ForeignKeys[0]
	if fk.ColumnName != "customer_id" || fk.ReferencesTable != "customers" || fk.ReferencesColumn != "id" {
		t.Errorf("unexpected foreign key: %+v", fk)
	}

	if !orders.IsPrimaryKey("id") {
		t.Error("expected id to be a primary key")
	}
	if orders.IsPrimaryKey("customer_id") {
		t.Error("customer_id must not be a primary key")
	}
}

func TestLoad_Invalid(t *testing.T) {
	if _, err := Load([]byte("tables: [broken")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	snap, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load snapshot file: %v", err)
	}
	if snap.Database != "shop" {
		t.Errorf("expected database shop, got %q", snap.Database)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHasTable_ExactMatch(t *testing.T) {
	snap, err := Load([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	if !snap.HasTable("orders") {
		t.Error("expected orders to be present")
	}
	// Matching is exact-string; casing is the caller's responsibility.
	if snap.HasTable("Orders") {
		t.Error("table matching must be case-sensitive")
	}
}

func TestFormat(t *testing.T) {
	snap, err := Load([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	text := snap.Format()

	for _, want := range []string{
		"Database: shop",
		"## Table: customers",
		"## Table: orders",
		"- id (INTEGER) (Primary Key)",
		"- customer_id references customers.id",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected formatted schema to contain %q\n%s", want, text)
		}
	}
}

func TestAnalyzeQuestion(t *testing.T) {
	snap, err := Load([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		question       string
		wantComplexity string
		wantJoins      bool
		wantAggs       bool
		wantTables     []string
	}{
		{
			name:           "simple lookup",
			question:       "Show all customers",
			wantComplexity: ComplexitySimple,
			wantTables:     []string{"customers"},
		},
		{
			name:           "aggregation",
			question:       "What is the total number of orders?",
			wantComplexity: ComplexityMedium,
			wantAggs:       true,
			wantTables:     []string{"orders"},
		},
		{
			name:           "join needed",
			question:       "List orders related to our customers",
			wantComplexity: ComplexityMedium,
			wantJoins:      true,
			wantTables:     []string{"customers", "orders"},
		},
		{
			name:           "complex",
			question:       "For each of the customers, count orders placed after 2022",
			wantComplexity: ComplexityComplex,
			wantAggs:       true,
			wantTables:     []string{"customers", "orders"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.AnalyzeQuestion(tt.question)
			if got.Complexity != tt.wantComplexity {
				t.Errorf("expected complexity %s, got %s", tt.wantComplexity, got.Complexity)
			}
			if got.LikelyJoinsNeeded != tt.wantJoins {
				t.Errorf("expected joins=%v, got %v", tt.wantJoins, got.LikelyJoinsNeeded)
			}
			if got.LikelyAggregations != tt.wantAggs {
				t.Errorf("expected aggregations=%v, got %v", tt.wantAggs, got.LikelyAggregations)
			}
			if len(got.LikelyTables) != len(tt.wantTables) {
				t.Errorf("expected tables %v, got %v", tt.wantTables, got.LikelyTables)
			}
			if got.SuggestedApproach == "" {
				t.Error("expected a suggested approach")
			}
		})
	}
}
