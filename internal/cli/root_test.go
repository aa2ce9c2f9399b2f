package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqljudge/internal/cli/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const testSchemaYAML = `
database: shop
tables:
  - name: customers
    columns:
      - name: id
        type: INTEGER
    primary_keys: [id]
  - name: orders
    columns:
      - name: id
        type: INTEGER
      - name: customer_id
        type: INTEGER
    foreign_keys:
      - column_name: customer_id
        references_table: customers
        references_column: id
`

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqljudge v")
}

func TestCompareCommand_Inline(t *testing.T) {
	out, err := execute(t, "-o", "json", "compare", "--inline",
		"SELECT a FROM t", "SELECT a FROM t")
	require.NoError(t, err)

	var report struct {
		Overall struct {
			F1 float64 `json:"f1"`
		} `json:"overall"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1.0, report.Overall.F1)
}

func TestCompareCommand_Files(t *testing.T) {
	predicted := writeFile(t, "predicted.sql", "SELECT a, b FROM t")
	reference := writeFile(t, "reference.sql", "SELECT a FROM t")

	out, err := execute(t, "compare", predicted, reference)
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT")
	assert.Contains(t, out, "Overall:")
}

func TestCompareCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "compare", "/does/not/exist.sql", "/also/missing.sql")
	require.Error(t, err)
}

func TestTablesCommand(t *testing.T) {
	out, err := execute(t, "tables", "--inline",
		"SELECT * FROM customers c JOIN orders o ON c.id = o.customer_id")
	require.NoError(t, err)
	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "orders")
}

func TestPathsCommand(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchemaYAML)

	out, err := execute(t, "--schema", schemaPath, "paths", "orders", "customers")
	require.NoError(t, err)
	assert.Contains(t, out, "INNER JOIN customers ON orders.customer_id = customers.id")
}

func TestPathsCommand_NoSchema(t *testing.T) {
	_, err := execute(t, "paths", "orders", "customers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema configured")
}

func TestPathsCommand_UnknownTable(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchemaYAML)

	_, err := execute(t, "--schema", schemaPath, "paths", "orders", "invoices")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown table")
}

func TestSchemaShowCommand(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchemaYAML)

	out, err := execute(t, "--schema", schemaPath, "schema", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "## Table: customers")
	assert.Contains(t, out, "customer_id references customers.id")
}

func TestSchemaRelationshipsCommand(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchemaYAML)

	out, err := execute(t, "--schema", schemaPath, "schema", "relationships")
	require.NoError(t, err)
	assert.Contains(t, out, "orders.customer_id -> customers.id (explicit_foreign_key)")
}

func TestEvalCommand(t *testing.T) {
	dataset := writeFile(t, "cases.yaml", `
cases:
  - predicted: SELECT a FROM t
    reference: SELECT a FROM t
  - predicted: SELECT b FROM t
    reference: SELECT a FROM t WHERE a > 1
`)

	out, err := execute(t, "-o", "json", "eval", dataset)
	require.NoError(t, err)

	var summary struct {
		Total     int    `json:"total"`
		RunID     string `json:"run_id"`
		SyntaxOK  int    `json:"syntax_correct"`
		Component map[string]struct {
			Correct int `json:"correct"`
			Total   int `json:"total"`
		} `json:"component_matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Total)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.SyntaxOK)
	assert.Equal(t, 2, summary.Component["select"].Total)
}

func TestEvalCommand_SaveAndList(t *testing.T) {
	dataset := writeFile(t, "cases.yaml", `
cases:
  - predicted: SELECT a FROM t
    reference: SELECT a FROM t
`)
	statePath := filepath.Join(t.TempDir(), "state", "runs.db")

	out, err := execute(t, "--state", statePath, "eval", dataset, "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Run ")

	listed, err := execute(t, "--state", statePath, "runs")
	require.NoError(t, err)
	assert.Contains(t, listed, "cases=1")
	assert.NotContains(t, listed, "(no runs)")
}

func TestRunsCommand_Empty(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "empty.db")

	out, err := execute(t, "--state", statePath, "runs")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "(no runs)"), out)
}

func TestGetConfig_FallsBack(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cfg := GetConfig(t.Context())
	assert.Equal(t, config.DefaultStateFile, cfg.StatePath)
}
