package adapter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leapstack-labs/sqljudge/internal/schema"
)

// placeholders abstracts the parameter marker style of a dialect:
// "?" for duckdb, "$1" for postgres.
type placeholders func(n int) string

func questionMarks(int) string { return "?" }

func dollarMarks(n int) string { return fmt.Sprintf("$%d", n) }

// extractSnapshot builds a schema snapshot from a live connection's
// information_schema: base tables with their columns in ordinal order,
// then primary-key and foreign-key constraints. Tables come back in
// name order, which becomes the snapshot's table order.
func extractSnapshot(ctx context.Context, db *sql.DB, database, schemaName string, ph placeholders) (*schema.Snapshot, error) {
	snap := &schema.Snapshot{Database: database, Schema: schemaName}

	tables, err := extractTables(ctx, db, schemaName, ph)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(tables))
	for i, name := range tables {
		snap.Tables = append(snap.Tables, schema.Table{Name: name})
		index[name] = i
	}

	if err := extractColumns(ctx, db, schemaName, ph, snap, index); err != nil {
		return nil, err
	}
	if err := extractPrimaryKeys(ctx, db, schemaName, ph, snap, index); err != nil {
		return nil, err
	}
	if err := extractForeignKeys(ctx, db, schemaName, ph, snap, index); err != nil {
		return nil, err
	}

	return snap, nil
}

func extractTables(ctx context.Context, db *sql.DB, schemaName string, ph placeholders) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = %s AND table_type = 'BASE TABLE'
		ORDER BY table_name`, ph(1))

	rows, err := db.QueryContext(ctx, query, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

func extractColumns(ctx context.Context, db *sql.DB, schemaName string, ph placeholders, snap *schema.Snapshot, index map[string]int) error {
	query := fmt.Sprintf(`
		SELECT table_name, column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = %s
		ORDER BY table_name, ordinal_position`, ph(1))

	rows, err := db.QueryContext(ctx, query, schemaName)
	if err != nil {
		return fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return fmt.Errorf("failed to scan column: %w", err)
		}
		i, ok := index[table]
		if !ok {
			continue
		}
		snap.Tables[i].Columns = append(snap.Tables[i].Columns, schema.Column{
			Name: column,
			Type: dataType,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating columns: %w", err)
	}
	return nil
}

func extractPrimaryKeys(ctx context.Context, db *sql.DB, schemaName string, ph placeholders, snap *schema.Snapshot, index map[string]int) error {
	query := fmt.Sprintf(`
		SELECT kcu.table_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = %s AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.table_name, kcu.ordinal_position`, ph(1))

	rows, err := db.QueryContext(ctx, query, schemaName)
	if err != nil {
		return fmt.Errorf("failed to query primary keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return fmt.Errorf("failed to scan primary key: %w", err)
		}
		if i, ok := index[table]; ok {
			snap.Tables[i].PrimaryKeys = append(snap.Tables[i].PrimaryKeys, column)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating primary keys: %w", err)
	}
	return nil
}

func extractForeignKeys(ctx context.Context, db *sql.DB, schemaName string, ph placeholders, snap *schema.Snapshot, index map[string]int) error {
	query := fmt.Sprintf(`
		SELECT kcu.table_name, kcu.column_name, ccu.table_name, ccu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON tc.constraint_name = ccu.constraint_name
			AND tc.table_schema = ccu.table_schema
		WHERE tc.table_schema = %s AND tc.constraint_type = 'FOREIGN KEY'
		ORDER BY kcu.table_name, kcu.ordinal_position`, ph(1))

	rows, err := db.QueryContext(ctx, query, schemaName)
	if err != nil {
		return fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var table, column, refTable, refColumn string
		if err := rows.Scan(&table, &column, &refTable, &refColumn); err != nil {
			return fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if i, ok := index[table]; ok {
			snap.Tables[i].ForeignKeys = append(snap.Tables[i].ForeignKeys, schema.ForeignKey{
				ColumnName:       column,
				ReferencesTable:  refTable,
				ReferencesColumn: refColumn,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating foreign keys: %w", err)
	}
	return nil
}
