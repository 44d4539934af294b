package primary

import "context"

// CorrectionsService is the read side: hierarchical grouped summaries plus
// the legacy flat views, all derived from stored correction rows.
type CorrectionsService interface {
	// TitleSummaries returns one grouped summary per stored title, in
	// title order. A title with zero corrections gets an empty Grouped
	// list, not an error.
	TitleSummaries(ctx context.Context) ([]*TitleSummary, error)

	// TitleSummary returns the grouped summary for a single title.
	TitleSummary(ctx context.Context, titleID int) (*TitleSummary, error)

	// LegacySummary returns per-title correction totals ordered by count
	// descending.
	LegacySummary(ctx context.Context) ([]*TitleCount, error)

	// Breakdown returns per-title grouped hierarchy rows keyed by title id.
	Breakdown(ctx context.Context) (map[int][]*BreakdownRow, error)
}

// TitleSummary is the grouped corrections view for one title.
type TitleSummary struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Total   int             `json:"total"`
	Grouped []*SummaryGroup `json:"grouped"`
}

// SummaryGroup is one "Label: value" group with its corrections, in
// natural-sort order relative to its siblings.
type SummaryGroup struct {
	Key     string          `json:"key"`
	Entries []*SummaryEntry `json:"entries"`
}

// SummaryEntry is one correction inside a group. Year carries the literal
// "Unknown" when the correction has no year.
type SummaryEntry struct {
	Section    string `json:"section"`
	Year       string `json:"year"`
	FRCitation string `json:"fr_citation"`
	Action     string `json:"action"`
}

// TitleCount is one row of the legacy flat summary.
type TitleCount struct {
	TitleID          int    `json:"title_id"`
	TitleName        string `json:"title_name"`
	TotalCorrections int    `json:"total_corrections"`
}

// BreakdownRow is one grouped hierarchy row of the legacy breakdown.
type BreakdownRow struct {
	Year     int    `json:"year"`
	Subtitle string `json:"subtitle,omitempty"`
	Chapter  string `json:"chapter,omitempty"`
	Part     string `json:"part,omitempty"`
	Subpart  string `json:"subpart,omitempty"`
	Section  string `json:"section,omitempty"`
	Count    int    `json:"count"`
}

// StatusService reports stored row counts per table for the status command.
type StatusService interface {
	Counts(ctx context.Context) (*StoreCounts, error)
}

// StoreCounts is a snapshot of table sizes.
type StoreCounts struct {
	Agencies     int `json:"agencies"`
	Titles       int `json:"titles"`
	Associations int `json:"associations"`
	Corrections  int `json:"corrections"`
}
