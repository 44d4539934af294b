package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cfrsync/internal/ports/secondary"
)

// StageRunner wraps an ingestion stage in one SQLite transaction.
//
// Requires the connection pool to be capped at a single connection (see
// internal/db); BEGIN/COMMIT issued through the pool then land on the same
// connection as the stage's statements.
type StageRunner struct {
	db *sql.DB
}

// NewStageRunner creates a stage runner over the shared connection.
func NewStageRunner(db *sql.DB) *StageRunner {
	return &StageRunner{db: db}
}

// RunStage executes fn inside BEGIN IMMEDIATE .. COMMIT, rolling back when
// fn fails.
func (s *StageRunner) RunStage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if _, err := s.db.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("failed to begin %s stage: %w", name, err)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := s.db.ExecContext(ctx, "ROLLBACK"); rbErr != nil {
			return fmt.Errorf("%s stage failed (rollback also failed: %v): %w", name, rbErr, err)
		}
		return fmt.Errorf("%s stage failed: %w", name, err)
	}

	if _, err := s.db.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("failed to commit %s stage: %w", name, err)
	}

	return nil
}

// Ensure StageRunner implements the interface.
var _ secondary.StageRunner = (*StageRunner)(nil)
