// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cfrsync/internal/ports/secondary"
)

// AgencyRepository implements secondary.AgencyRepository with SQLite.
type AgencyRepository struct {
	db *sql.DB
}

// NewAgencyRepository creates a new SQLite agency repository.
func NewAgencyRepository(db *sql.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

// Create persists a new agency.
func (r *AgencyRepository) Create(ctx context.Context, agency *secondary.AgencyRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO agency (parent_short_name, short_name, name, slug, children, cfr_reference, checksum)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		agency.ParentShortName, agency.ShortName, agency.Name, agency.Slug,
		agency.Children, agency.CFRReference, agency.Checksum,
	)
	if err != nil {
		return fmt.Errorf("failed to create agency: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get agency id: %w", err)
	}
	agency.ID = id

	return nil
}

// ExistsByShortName reports whether an agency with the short name is stored.
func (r *AgencyRepository) ExistsByShortName(ctx context.Context, shortName string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM agency WHERE short_name = ?", shortName,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check agency existence: %w", err)
	}

	return true, nil
}

// List retrieves all stored agencies ordered by id.
func (r *AgencyRepository) List(ctx context.Context) ([]*secondary.AgencyRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, parent_short_name, short_name, name, slug, children, cfr_reference, checksum
		 FROM agency ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}
	defer rows.Close()

	var agencies []*secondary.AgencyRecord
	for rows.Next() {
		record := &secondary.AgencyRecord{}
		var parent, short, name, slug, children, refs, sum sql.NullString

		err := rows.Scan(&record.ID, &parent, &short, &name, &slug, &children, &refs, &sum)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agency: %w", err)
		}

		record.ParentShortName = parent.String
		record.ShortName = short.String
		record.Name = name.String
		record.Slug = slug.String
		record.Children = children.String
		record.CFRReference = refs.String
		record.Checksum = sum.String

		agencies = append(agencies, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agencies: %w", err)
	}

	return agencies, nil
}

// Count returns the number of stored agencies.
func (r *AgencyRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM agency").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count agencies: %w", err)
	}
	return count, nil
}

// Ensure AgencyRepository implements the interface.
var _ secondary.AgencyRepository = (*AgencyRepository)(nil)
