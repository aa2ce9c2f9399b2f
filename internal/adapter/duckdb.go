package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/sqljudge/internal/schema"
)

func init() {
	Register("duckdb", func(logger *slog.Logger) Adapter { return NewDuckDB(logger) })
}

// DuckDB implements the Adapter interface for DuckDB.
type DuckDB struct {
	db     *sql.DB
	config Config
	logger *slog.Logger
}

// NewDuckDB creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func NewDuckDB(logger *slog.Logger) *DuckDB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DuckDB{logger: logger}
}

// DialectName returns the SQL dialect for this adapter.
func (a *DuckDB) DialectName() string {
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *DuckDB) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.db = db
	a.config = cfg
	return nil
}

// Close closes the DuckDB connection.
func (a *DuckDB) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// ExtractSnapshot reads the connected database's schema.
func (a *DuckDB) ExtractSnapshot(ctx context.Context) (*schema.Snapshot, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schemaName := a.config.Schema
	if schemaName == "" {
		schemaName = "main"
	}

	return extractSnapshot(ctx, a.db, a.config.Database, schemaName, questionMarks)
}

// Ensure DuckDB implements Adapter interface
var _ Adapter = (*DuckDB)(nil)
