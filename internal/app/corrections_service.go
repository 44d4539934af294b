package app

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/example/cfrsync/internal/natsort"
	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/ports/secondary"
)

// groupRules is the fixed grouping-key priority for corrections:
// first non-empty field wins. The order subtitle > chapter > part >
// subpart > section is the disambiguation policy and must not be
// rearranged into strict CFR nesting order.
var groupRules = []struct {
	label string
	value func(c *secondary.CorrectionRecord) string
}{
	{"Subtitle", func(c *secondary.CorrectionRecord) string { return c.Subtitle }},
	{"Chapter", func(c *secondary.CorrectionRecord) string { return c.Chapter }},
	{"Part", func(c *secondary.CorrectionRecord) string { return c.Part }},
	{"Subpart", func(c *secondary.CorrectionRecord) string { return c.Subpart }},
	{"Section", func(c *secondary.CorrectionRecord) string { return c.Section }},
	{"Year", func(c *secondary.CorrectionRecord) string {
		if c.Year != 0 {
			return strconv.Itoa(c.Year)
		}
		return ""
	}},
}

// uncategorizedKey groups corrections with no usable hierarchy field.
const uncategorizedKey = "Uncategorized: N/A"

// CorrectionsServiceImpl implements the CorrectionsService interface: the
// read side deriving grouped and flat views from stored correction rows.
type CorrectionsServiceImpl struct {
	titleRepo secondary.TitleRepository
	corrRepo  secondary.CorrectionRepository
}

// NewCorrectionsService creates a new CorrectionsService with injected
// dependencies.
func NewCorrectionsService(titleRepo secondary.TitleRepository, corrRepo secondary.CorrectionRepository) *CorrectionsServiceImpl {
	return &CorrectionsServiceImpl{
		titleRepo: titleRepo,
		corrRepo:  corrRepo,
	}
}

// TitleSummaries returns one grouped summary per stored title, in title
// order.
func (s *CorrectionsServiceImpl) TitleSummaries(ctx context.Context) ([]*primary.TitleSummary, error) {
	titles, err := s.titleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	summaries := make([]*primary.TitleSummary, 0, len(titles))
	for _, title := range titles {
		summary, err := s.summarize(ctx, title)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// TitleSummary returns the grouped summary for a single title.
func (s *CorrectionsServiceImpl) TitleSummary(ctx context.Context, titleID int) (*primary.TitleSummary, error) {
	title, err := s.titleRepo.Get(ctx, titleID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, title)
}

// summarize groups one title's corrections by their winning hierarchy key
// and orders the groups naturally.
func (s *CorrectionsServiceImpl) summarize(ctx context.Context, title *secondary.TitleRecord) (*primary.TitleSummary, error) {
	corrections, err := s.corrRepo.ListByTitle(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections for title %d: %w", title.ID, err)
	}

	groups := make(map[string]*primary.SummaryGroup)
	for _, correction := range corrections {
		key := groupKey(correction)

		group, ok := groups[key]
		if !ok {
			group = &primary.SummaryGroup{Key: key}
			groups[key] = group
		}

		year := "Unknown"
		if correction.Year != 0 {
			year = strconv.Itoa(correction.Year)
		}

		group.Entries = append(group.Entries, &primary.SummaryEntry{
			Section:    correction.Section,
			Year:       year,
			FRCitation: correction.FRCitation,
			Action:     correction.CorrectiveAction,
		})
	}

	grouped := make([]*primary.SummaryGroup, 0, len(groups))
	for _, group := range groups {
		grouped = append(grouped, group)
	}
	sort.Slice(grouped, func(i, j int) bool {
		return natsort.Less(grouped[i].Key, grouped[j].Key)
	})

	return &primary.TitleSummary{
		ID:      title.ID,
		Name:    title.Name,
		Total:   len(corrections),
		Grouped: grouped,
	}, nil
}

// groupKey picks the first non-empty field in priority order and renders
// it as "Label: value".
func groupKey(c *secondary.CorrectionRecord) string {
	for _, rule := range groupRules {
		if value := rule.value(c); value != "" {
			return rule.label + ": " + value
		}
	}
	return uncategorizedKey
}

// LegacySummary returns per-title correction totals ordered by count
// descending.
func (s *CorrectionsServiceImpl) LegacySummary(ctx context.Context) ([]*primary.TitleCount, error) {
	counts, err := s.corrRepo.CountByTitle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count corrections: %w", err)
	}

	summary := make([]*primary.TitleCount, len(counts))
	for i, c := range counts {
		summary[i] = &primary.TitleCount{
			TitleID:          c.TitleID,
			TitleName:        c.TitleName,
			TotalCorrections: c.TotalCorrections,
		}
	}
	return summary, nil
}

// Breakdown returns per-title grouped hierarchy rows keyed by title id.
func (s *CorrectionsServiceImpl) Breakdown(ctx context.Context) (map[int][]*primary.BreakdownRow, error) {
	records, err := s.corrRepo.Breakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load breakdown: %w", err)
	}

	breakdown := make(map[int][]*primary.BreakdownRow)
	for _, r := range records {
		breakdown[r.TitleID] = append(breakdown[r.TitleID], &primary.BreakdownRow{
			Year:     r.Year,
			Subtitle: r.Subtitle,
			Chapter:  r.Chapter,
			Part:     r.Part,
			Subpart:  r.Subpart,
			Section:  r.Section,
			Count:    r.Count,
		})
	}
	return breakdown, nil
}

// Ensure CorrectionsServiceImpl implements the interface.
var _ primary.CorrectionsService = (*CorrectionsServiceImpl)(nil)
