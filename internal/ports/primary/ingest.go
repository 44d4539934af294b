// Package primary defines the primary ports (driving interfaces) for the
// application: the operations the CLI and HTTP layers invoke.
package primary

import "context"

// IngestService drives the four-stage synchronization batch. Stages are
// ordered: agencies, titles, associations, corrections. Titles must exist
// before associations or corrections can resolve, so callers must not
// reorder them. Every stage is independently idempotent and safely
// re-runnable.
type IngestService interface {
	// IngestAgencies fetches the agency tree and inserts unseen agencies
	// (top level plus one level of children), computing checksums at
	// insert time.
	IngestAgencies(ctx context.Context) (*StageResult, error)

	// IngestTitles fetches the title list and inserts unseen titles.
	// Precondition: none.
	IngestTitles(ctx context.Context) (*StageResult, error)

	// BuildAssociations links stored agencies to stored titles from their
	// CFR references. Precondition: agencies and titles ingested;
	// references to unknown titles are skipped silently.
	BuildAssociations(ctx context.Context) (*StageResult, error)

	// IngestCorrections fetches the corrections collection and inserts
	// unseen corrections. Precondition: titles ingested; corrections
	// without a resolvable title are skipped.
	IngestCorrections(ctx context.Context) (*StageResult, error)

	// Run executes all four stages in order. A failed stage is recorded in
	// the report and does not abort the remaining stages.
	Run(ctx context.Context, opts IngestOptions) *IngestReport
}

// IngestOptions toggles individual stages of a full run.
type IngestOptions struct {
	SkipAgencies    bool
	SkipCorrections bool
}

// StageResult counts what one stage did.
type StageResult struct {
	Created int
	Skipped int
}

// StageReport is the outcome of one stage within a full run.
type StageReport struct {
	Name   string
	Result *StageResult
	Err    error
}

// IngestReport is the outcome of a full run, in stage order.
type IngestReport struct {
	Stages []StageReport
}

// Failed reports whether any executed stage errored.
func (r *IngestReport) Failed() bool {
	for _, s := range r.Stages {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// VerifyService recomputes agency checksums and reports drift. Detection
// is advisory only; nothing is mutated or auto-repaired.
type VerifyService interface {
	// VerifyChecksums returns the agencies whose recomputed checksum no
	// longer matches the stored one.
	VerifyChecksums(ctx context.Context) ([]*DriftRecord, error)
}

// DriftRecord identifies an agency whose stored data drifted.
type DriftRecord struct {
	ID        int64
	ShortName string
	Name      string
}
