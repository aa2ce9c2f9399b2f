package state

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/leapstack-labs/sqljudge/internal/eval"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema initializes the database schema.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveRun persists an evaluation summary under its run ID.
func (s *SQLiteStore) SaveRun(dataset string, summary *eval.Summary) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if summary == nil || summary.RunID == "" {
		return fmt.Errorf("summary with a run id is required")
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, dataset, total, syntax_correct, overall_precision, overall_recall,
			overall_f1, mean_table_similarity, started_at, duration_ms, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, dataset, summary.Total, summary.SyntaxCorrect,
		summary.Overall.Precision, summary.Overall.Recall, summary.Overall.F1,
		summary.MeanTableSimilarity, summary.StartedAt.UTC(),
		summary.Duration.Milliseconds(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun retrieves a run with its full summary.
func (s *SQLiteStore) GetRun(id string) (*RunRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	record := &RunRecord{}
	var durationMS int64
	var payload string

	err := s.db.QueryRow(
		`SELECT id, dataset, total, syntax_correct, overall_precision, overall_recall,
			overall_f1, mean_table_similarity, started_at, duration_ms, summary_json
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&record.ID, &record.Dataset, &record.Total, &record.SyntaxCorrect,
		&record.OverallPrecision, &record.OverallRecall, &record.OverallF1,
		&record.MeanTableSimilarity, &record.StartedAt, &durationMS, &payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	record.Duration = time.Duration(durationMS) * time.Millisecond
	record.Summary = &eval.Summary{}
	if err := json.Unmarshal([]byte(payload), record.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}

	return record, nil
}

// ListRuns retrieves the most recent runs, newest first, without
// per-case detail.
func (s *SQLiteStore) ListRuns(limit int) ([]*RunRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, dataset, total, syntax_correct, overall_precision, overall_recall,
			overall_f1, mean_table_similarity, started_at, duration_ms
		 FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*RunRecord
	for rows.Next() {
		record := &RunRecord{}
		var durationMS int64
		if err := rows.Scan(&record.ID, &record.Dataset, &record.Total, &record.SyntaxCorrect,
			&record.OverallPrecision, &record.OverallRecall, &record.OverallF1,
			&record.MeanTableSimilarity, &record.StartedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, record)
	}

	return records, rows.Err()
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
