package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cfrsync/internal/ports/secondary"
)

// CorrectionRepository implements secondary.CorrectionRepository with SQLite.
type CorrectionRepository struct {
	db *sql.DB
}

// NewCorrectionRepository creates a new SQLite correction repository.
func NewCorrectionRepository(db *sql.DB) *CorrectionRepository {
	return &CorrectionRepository{db: db}
}

// Create persists a new correction.
func (r *CorrectionRepository) Create(ctx context.Context, c *secondary.CorrectionRecord) error {
	var year interface{}
	if c.Year != 0 {
		year = c.Year
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO corrections (
			id, title_id, fr_citation, corrective_action, error_corrected,
			error_occurred, last_modified, display_in_toc, position, year,
			title_text, cfr_reference, chapter, part, section, subchapter,
			subject_group, subpart, subtitle
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TitleID, c.FRCitation, c.CorrectiveAction, c.ErrorCorrected,
		c.ErrorOccurred, c.LastModified, c.DisplayInTOC, c.Position, year,
		c.TitleText, c.CFRReference, nullable(c.Chapter), nullable(c.Part),
		nullable(c.Section), nullable(c.Subchapter), nullable(c.SubjectGroup),
		nullable(c.Subpart), nullable(c.Subtitle),
	)
	if err != nil {
		return fmt.Errorf("failed to create correction: %w", err)
	}
	return nil
}

// Exists reports whether the correction id is stored.
func (r *CorrectionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM corrections WHERE id = ?", id,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check correction existence: %w", err)
	}

	return true, nil
}

// ListByTitle retrieves the corrections for a title in stored order.
func (r *CorrectionRepository) ListByTitle(ctx context.Context, titleID int) ([]*secondary.CorrectionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title_id, fr_citation, corrective_action, error_corrected,
			error_occurred, last_modified, display_in_toc, position, year,
			title_text, cfr_reference, chapter, part, section, subchapter,
			subject_group, subpart, subtitle
		 FROM corrections WHERE title_id = ? ORDER BY rowid ASC`,
		titleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	var corrections []*secondary.CorrectionRecord
	for rows.Next() {
		record, err := scanCorrection(rows)
		if err != nil {
			return nil, err
		}
		corrections = append(corrections, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	return corrections, nil
}

// CountByTitle returns per-title correction totals ordered by count
// descending. Titles without corrections are not included.
func (r *CorrectionRepository) CountByTitle(ctx context.Context) ([]*secondary.TitleCorrectionCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, COUNT(c.id) AS total
		 FROM titles t
		 JOIN corrections c ON t.id = c.title_id
		 GROUP BY t.id, t.name
		 ORDER BY total DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count corrections by title: %w", err)
	}
	defer rows.Close()

	var counts []*secondary.TitleCorrectionCount
	for rows.Next() {
		record := &secondary.TitleCorrectionCount{}
		if err := rows.Scan(&record.TitleID, &record.TitleName, &record.TotalCorrections); err != nil {
			return nil, fmt.Errorf("failed to scan title count: %w", err)
		}
		counts = append(counts, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate title counts: %w", err)
	}

	return counts, nil
}

// Breakdown returns grouped correction counts per title and hierarchy
// location, ordered by title then year.
func (r *CorrectionRepository) Breakdown(ctx context.Context) ([]*secondary.BreakdownRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title_id, COALESCE(year, 0), COALESCE(subtitle, ''), COALESCE(chapter, ''),
			COALESCE(part, ''), COALESCE(subpart, ''), COALESCE(section, ''), COUNT(id)
		 FROM corrections
		 GROUP BY title_id, year, chapter, subtitle, part, subpart, section
		 ORDER BY title_id ASC, year ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query correction breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []*secondary.BreakdownRecord
	for rows.Next() {
		record := &secondary.BreakdownRecord{}
		err := rows.Scan(&record.TitleID, &record.Year, &record.Subtitle, &record.Chapter,
			&record.Part, &record.Subpart, &record.Section, &record.Count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan breakdown row: %w", err)
		}
		breakdown = append(breakdown, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breakdown rows: %w", err)
	}

	return breakdown, nil
}

// Count returns the number of stored corrections.
func (r *CorrectionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corrections").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count corrections: %w", err)
	}
	return count, nil
}

// scanCorrection maps one corrections row onto a record, normalizing NULL
// hierarchy fields to empty strings and NULL year to zero.
func scanCorrection(rows *sql.Rows) (*secondary.CorrectionRecord, error) {
	record := &secondary.CorrectionRecord{}
	var (
		frCitation, action, corrected, occurred, modified  sql.NullString
		titleText, cfrRef                                  sql.NullString
		chapter, part, section, subchapter                 sql.NullString
		subjectGroup, subpart, subtitle                    sql.NullString
		position, year                                     sql.NullInt64
	)

	err := rows.Scan(&record.ID, &record.TitleID, &frCitation, &action, &corrected,
		&occurred, &modified, &record.DisplayInTOC, &position, &year,
		&titleText, &cfrRef, &chapter, &part, &section, &subchapter,
		&subjectGroup, &subpart, &subtitle)
	if err != nil {
		return nil, fmt.Errorf("failed to scan correction: %w", err)
	}

	record.FRCitation = frCitation.String
	record.CorrectiveAction = action.String
	record.ErrorCorrected = corrected.String
	record.ErrorOccurred = occurred.String
	record.LastModified = modified.String
	record.Position = int(position.Int64)
	record.Year = int(year.Int64)
	record.TitleText = titleText.String
	record.CFRReference = cfrRef.String
	record.Chapter = chapter.String
	record.Part = part.String
	record.Section = section.String
	record.Subchapter = subchapter.String
	record.SubjectGroup = subjectGroup.String
	record.Subpart = subpart.String
	record.Subtitle = subtitle.String

	return record, nil
}

// nullable maps an empty string to NULL so absent hierarchy fields stay
// absent in the store.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure CorrectionRepository implements the interface.
var _ secondary.CorrectionRepository = (*CorrectionRepository)(nil)
