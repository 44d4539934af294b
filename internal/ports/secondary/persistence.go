// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application
// drives the store and the remote registry.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups for rows that are not stored. Callers
// match it with errors.Is to distinguish absence from store failures.
var ErrNotFound = errors.New("not found")

// AgencyRepository defines the secondary port for agency persistence.
// Ingestion is insert-only: there is no update or delete.
type AgencyRepository interface {
	// Create persists a new agency.
	Create(ctx context.Context, agency *AgencyRecord) error

	// ExistsByShortName reports whether an agency with the short name is stored.
	ExistsByShortName(ctx context.Context, shortName string) (bool, error)

	// List retrieves all stored agencies ordered by id.
	List(ctx context.Context) ([]*AgencyRecord, error)

	// Count returns the number of stored agencies.
	Count(ctx context.Context) (int, error)
}

// AgencyRecord represents an agency as stored in persistence.
// CFRReference holds the canonical JSON serialization of the agency's CFR
// reference list; Children is a legacy field that stays empty but remains
// part of the checksum input.
type AgencyRecord struct {
	ID              int64
	ParentShortName string
	ShortName       string
	Name            string
	Slug            string
	Children        string
	CFRReference    string
	Checksum        string
}

// TitleRepository defines the secondary port for title persistence.
// A title's id is the CFR title number itself.
type TitleRepository interface {
	// Create persists a new title.
	Create(ctx context.Context, title *TitleRecord) error

	// Exists reports whether the title number is stored.
	Exists(ctx context.Context, id int) (bool, error)

	// Get retrieves a title by number.
	Get(ctx context.Context, id int) (*TitleRecord, error)

	// List retrieves all stored titles ordered by id.
	List(ctx context.Context) ([]*TitleRecord, error)

	// Count returns the number of stored titles.
	Count(ctx context.Context) (int, error)
}

// TitleRecord represents a CFR title as stored in persistence.
type TitleRecord struct {
	ID   int
	Name string
}

// AgencyTitleRepository defines the secondary port for the agency<->title
// association table.
type AgencyTitleRepository interface {
	// Link inserts an association between an agency and a title.
	Link(ctx context.Context, agencyID int64, titleID int) error

	// Linked reports whether the (agency, title) pair is already associated.
	Linked(ctx context.Context, agencyID int64, titleID int) (bool, error)

	// Count returns the number of stored associations.
	Count(ctx context.Context) (int, error)
}

// CorrectionRepository defines the secondary port for correction persistence.
type CorrectionRepository interface {
	// Create persists a new correction.
	Create(ctx context.Context, correction *CorrectionRecord) error

	// Exists reports whether the correction id is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// ListByTitle retrieves the corrections for a title in stored order.
	ListByTitle(ctx context.Context, titleID int) ([]*CorrectionRecord, error)

	// CountByTitle returns per-title correction totals ordered by count
	// descending.
	CountByTitle(ctx context.Context) ([]*TitleCorrectionCount, error)

	// Breakdown returns grouped correction counts per title and hierarchy
	// location, ordered by title then year.
	Breakdown(ctx context.Context) ([]*BreakdownRecord, error)

	// Count returns the number of stored corrections.
	Count(ctx context.Context) (int, error)
}

// CorrectionRecord represents a correction as stored in persistence.
// A Year of zero means the upstream payload had no year.
type CorrectionRecord struct {
	ID               string
	TitleID          int
	FRCitation       string
	CorrectiveAction string
	ErrorCorrected   string
	ErrorOccurred    string
	LastModified     string
	DisplayInTOC     bool
	Position         int
	Year             int
	TitleText        string
	CFRReference     string
	Chapter          string
	Part             string
	Section          string
	Subchapter       string
	SubjectGroup     string
	Subpart          string
	Subtitle         string
}

// TitleCorrectionCount is one row of the legacy per-title summary.
type TitleCorrectionCount struct {
	TitleID          int
	TitleName        string
	TotalCorrections int
}

// BreakdownRecord is one grouped row of the per-title hierarchy breakdown.
type BreakdownRecord struct {
	TitleID  int
	Year     int
	Subtitle string
	Chapter  string
	Part     string
	Subpart  string
	Section  string
	Count    int
}

// StageRunner wraps one ingestion stage in a single commit boundary.
// The stage's reads and inserts all land or are rolled back together;
// re-running a partially applied stage is safe because every insert is
// idempotent by natural key.
type StageRunner interface {
	RunStage(ctx context.Context, name string, fn func(ctx context.Context) error) error
}
