package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cfrsync/internal/ports/secondary"
)

// AgencyTitleRepository implements secondary.AgencyTitleRepository with SQLite.
type AgencyTitleRepository struct {
	db *sql.DB
}

// NewAgencyTitleRepository creates a new SQLite agency-title repository.
func NewAgencyTitleRepository(db *sql.DB) *AgencyTitleRepository {
	return &AgencyTitleRepository{db: db}
}

// Link inserts an association between an agency and a title.
func (r *AgencyTitleRepository) Link(ctx context.Context, agencyID int64, titleID int) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO agency_titles (agency_id, title_id) VALUES (?, ?)",
		agencyID, titleID,
	)
	if err != nil {
		return fmt.Errorf("failed to link agency %d to title %d: %w", agencyID, titleID, err)
	}
	return nil
}

// Linked reports whether the (agency, title) pair is already associated.
func (r *AgencyTitleRepository) Linked(ctx context.Context, agencyID int64, titleID int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM agency_titles WHERE agency_id = ? AND title_id = ?",
		agencyID, titleID,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check agency-title link: %w", err)
	}

	return true, nil
}

// Count returns the number of stored associations.
func (r *AgencyTitleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM agency_titles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count agency-title links: %w", err)
	}
	return count, nil
}

// Ensure AgencyTitleRepository implements the interface.
var _ secondary.AgencyTitleRepository = (*AgencyTitleRepository)(nil)
