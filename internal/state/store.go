// Package state persists evaluation run history in SQLite.
package state

import (
	"time"

	"github.com/leapstack-labs/sqljudge/internal/eval"
)

// RunRecord is one persisted evaluation run. Summary carries the full
// per-case detail; the remaining fields are denormalized for listing.
type RunRecord struct {
	ID                  string        `json:"id"`
	Dataset             string        `json:"dataset,omitempty"`
	Total               int           `json:"total"`
	SyntaxCorrect       int           `json:"syntax_correct"`
	OverallPrecision    float64       `json:"overall_precision"`
	OverallRecall       float64       `json:"overall_recall"`
	OverallF1           float64       `json:"overall_f1"`
	MeanTableSimilarity float64       `json:"mean_table_similarity"`
	StartedAt           time.Time     `json:"started_at"`
	Duration            time.Duration `json:"duration"`
	Summary             *eval.Summary `json:"summary,omitempty"`
}

// Store persists and retrieves evaluation runs.
type Store interface {
	// Open opens the store at the given path. Use ":memory:" for an
	// in-memory store.
	Open(path string) error

	// Close closes the store and releases resources.
	Close() error

	// InitSchema creates the storage schema if it does not exist.
	InitSchema() error

	// SaveRun persists an evaluation summary under its run ID.
	SaveRun(dataset string, summary *eval.Summary) error

	// GetRun retrieves a run with its full summary.
	GetRun(id string) (*RunRecord, error)

	// ListRuns retrieves the most recent runs, newest first, without
	// per-case detail. limit <= 0 means no limit.
	ListRuns(limit int) ([]*RunRecord, error)
}
