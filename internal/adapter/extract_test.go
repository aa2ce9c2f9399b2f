package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("customers").
			AddRow("orders"))

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "data_type"}).
			AddRow("customers", "id", "integer").
			AddRow("customers", "customer_name", "character varying").
			AddRow("orders", "id", "integer").
			AddRow("orders", "customer_id", "integer"))

	mock.ExpectQuery("constraint_type = 'PRIMARY KEY'").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name"}).
			AddRow("customers", "id").
			AddRow("orders", "id"))

	mock.ExpectQuery("constraint_type = 'FOREIGN KEY'").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "ref_table", "ref_column"}).
			AddRow("orders", "customer_id", "customers", "id"))

	snap, err := extractSnapshot(context.Background(), db, "shop", "public", dollarMarks)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "shop", snap.Database)
	assert.Equal(t, "public", snap.Schema)
	require.Len(t, snap.Tables, 2)

	customers := snap.Tables[0]
	assert.Equal(t, "customers", customers.Name)
	require.Len(t, customers.Columns, 2)
	assert.Equal(t, "customer_name", customers.Columns[1].Name)
	assert.Equal(t, []string{"id"}, customers.PrimaryKeys)
	assert.Empty(t, customers.ForeignKeys)

	orders := snap.Tables[1]
	assert.Equal(t, "orders", orders.Name)
	require.Len(t, orders.ForeignKeys, 1)
	fk := orders.ForeignKeys[0]
	assert.Equal(t, "customer_id", fk.ColumnName)
	assert.Equal(t, "customers", fk.ReferencesTable)
	assert.Equal(t, "id", fk.ReferencesColumn)
}

func TestExtractSnapshot_EmptySchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("empty").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("empty").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "data_type"}))
	mock.ExpectQuery("constraint_type = 'PRIMARY KEY'").
		WithArgs("empty").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name"}))
	mock.ExpectQuery("constraint_type = 'FOREIGN KEY'").
		WithArgs("empty").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "ref_table", "ref_column"}))

	snap, err := extractSnapshot(context.Background(), db, "", "empty", questionMarks)
	require.NoError(t, err)
	assert.Empty(t, snap.Tables)
}

func TestExtractSnapshot_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("public").
		WillReturnError(errors.New("connection reset"))

	_, err = extractSnapshot(context.Background(), db, "shop", "public", dollarMarks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query tables")
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", questionMarks(1))
	assert.Equal(t, "?", questionMarks(3))
	assert.Equal(t, "$1", dollarMarks(1))
	assert.Equal(t, "$2", dollarMarks(2))
}
