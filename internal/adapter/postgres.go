package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/leapstack-labs/sqljudge/internal/schema"
)

func init() {
	Register("postgres", func(logger *slog.Logger) Adapter { return NewPostgres(logger) })
}

// Postgres implements the Adapter interface for PostgreSQL.
type Postgres struct {
	db     *sql.DB
	config Config
	logger *slog.Logger
}

// NewPostgres creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func NewPostgres(logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Postgres{logger: logger}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Postgres) DialectName() string {
	return "postgres"
}

// Connect establishes a connection to PostgreSQL.
func (a *Postgres) Connect(ctx context.Context, cfg Config) error {
	dsn := buildPostgresDSN(cfg)

	a.logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.db = db
	a.config = cfg
	return nil
}

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(cfg Config) string {
	// Build key=value format: host=localhost port=5432 user=postgres ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}

// Close closes the PostgreSQL connection.
func (a *Postgres) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// ExtractSnapshot reads the connected database's schema.
func (a *Postgres) ExtractSnapshot(ctx context.Context) (*schema.Snapshot, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schemaName := a.config.Schema
	if schemaName == "" {
		schemaName = "public"
	}

	return extractSnapshot(ctx, a.db, a.config.Database, schemaName, dollarMarks)
}

// Ensure Postgres implements Adapter interface
var _ Adapter = (*Postgres)(nil)
