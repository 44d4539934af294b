package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cfrsync/internal/ports/secondary"
)

// TitleRepository implements secondary.TitleRepository with SQLite.
type TitleRepository struct {
	db *sql.DB
}

// NewTitleRepository creates a new SQLite title repository.
func NewTitleRepository(db *sql.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// Create persists a new title. The id is the CFR title number.
func (r *TitleRepository) Create(ctx context.Context, title *secondary.TitleRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO titles (id, name) VALUES (?, ?)",
		title.ID, title.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create title: %w", err)
	}
	return nil
}

// Exists reports whether the title number is stored.
func (r *TitleRepository) Exists(ctx context.Context, id int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM titles WHERE id = ?", id,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check title existence: %w", err)
	}

	return true, nil
}

// Get retrieves a title by number.
func (r *TitleRepository) Get(ctx context.Context, id int) (*secondary.TitleRecord, error) {
	record := &secondary.TitleRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM titles WHERE id = ?", id,
	).Scan(&record.ID, &record.Name)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("title %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get title: %w", err)
	}

	return record, nil
}

// List retrieves all stored titles ordered by id.
func (r *TitleRepository) List(ctx context.Context) ([]*secondary.TitleRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM titles ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	defer rows.Close()

	var titles []*secondary.TitleRecord
	for rows.Next() {
		record := &secondary.TitleRecord{}
		if err := rows.Scan(&record.ID, &record.Name); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate titles: %w", err)
	}

	return titles, nil
}

// Count returns the number of stored titles.
func (r *TitleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM titles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count titles: %w", err)
	}
	return count, nil
}

// Ensure TitleRepository implements the interface.
var _ secondary.TitleRepository = (*TitleRepository)(nil)
