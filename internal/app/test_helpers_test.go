package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/cfrsync/internal/metrics"
	"github.com/example/cfrsync/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockAgencyRepository implements secondary.AgencyRepository for testing.
type mockAgencyRepository struct {
	agencies  []*secondary.AgencyRecord
	nextID    int64
	createErr error
	listErr   error
}

func newMockAgencyRepository() *mockAgencyRepository {
	return &mockAgencyRepository{}
}

func (m *mockAgencyRepository) Create(ctx context.Context, agency *secondary.AgencyRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, a := range m.agencies {
		if a.ShortName == agency.ShortName {
			return errors.New("UNIQUE constraint failed: agency.short_name")
		}
	}
	m.nextID++
	agency.ID = m.nextID
	m.agencies = append(m.agencies, agency)
	return nil
}

func (m *mockAgencyRepository) ExistsByShortName(ctx context.Context, shortName string) (bool, error) {
	for _, a := range m.agencies {
		if a.ShortName == shortName {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAgencyRepository) List(ctx context.Context) ([]*secondary.AgencyRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.agencies, nil
}

func (m *mockAgencyRepository) Count(ctx context.Context) (int, error) {
	return len(m.agencies), nil
}

// mockTitleRepository implements secondary.TitleRepository for testing.
type mockTitleRepository struct {
	titles map[int]*secondary.TitleRecord
	order  []int
}

func newMockTitleRepository() *mockTitleRepository {
	return &mockTitleRepository{titles: make(map[int]*secondary.TitleRecord)}
}

func (m *mockTitleRepository) Create(ctx context.Context, title *secondary.TitleRecord) error {
	if _, ok := m.titles[title.ID]; ok {
		return errors.New("UNIQUE constraint failed: titles.id")
	}
	m.titles[title.ID] = title
	m.order = append(m.order, title.ID)
	return nil
}

func (m *mockTitleRepository) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := m.titles[id]
	return ok, nil
}

func (m *mockTitleRepository) Get(ctx context.Context, id int) (*secondary.TitleRecord, error) {
	if title, ok := m.titles[id]; ok {
		return title, nil
	}
	return nil, fmt.Errorf("title %d: %w", id, secondary.ErrNotFound)
}

func (m *mockTitleRepository) List(ctx context.Context) ([]*secondary.TitleRecord, error) {
	ids := append([]int(nil), m.order...)
	// Repository contract: ordered by title number.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	titles := make([]*secondary.TitleRecord, len(ids))
	for i, id := range ids {
		titles[i] = m.titles[id]
	}
	return titles, nil
}

func (m *mockTitleRepository) Count(ctx context.Context) (int, error) {
	return len(m.titles), nil
}

// mockAgencyTitleRepository implements secondary.AgencyTitleRepository for testing.
type mockAgencyTitleRepository struct {
	links map[string]bool
}

func newMockAgencyTitleRepository() *mockAgencyTitleRepository {
	return &mockAgencyTitleRepository{links: make(map[string]bool)}
}

func linkKey(agencyID int64, titleID int) string {
	return fmt.Sprintf("%d:%d", agencyID, titleID)
}

func (m *mockAgencyTitleRepository) Link(ctx context.Context, agencyID int64, titleID int) error {
	key := linkKey(agencyID, titleID)
	if m.links[key] {
		return errors.New("UNIQUE constraint failed: agency_titles")
	}
	m.links[key] = true
	return nil
}

func (m *mockAgencyTitleRepository) Linked(ctx context.Context, agencyID int64, titleID int) (bool, error) {
	return m.links[linkKey(agencyID, titleID)], nil
}

func (m *mockAgencyTitleRepository) Count(ctx context.Context) (int, error) {
	return len(m.links), nil
}

// mockCorrectionRepository implements secondary.CorrectionRepository for testing.
type mockCorrectionRepository struct {
	corrections []*secondary.CorrectionRecord
	byID        map[string]*secondary.CorrectionRecord
	counts      []*secondary.TitleCorrectionCount
	breakdown   []*secondary.BreakdownRecord
}

func newMockCorrectionRepository() *mockCorrectionRepository {
	return &mockCorrectionRepository{byID: make(map[string]*secondary.CorrectionRecord)}
}

func (m *mockCorrectionRepository) Create(ctx context.Context, c *secondary.CorrectionRecord) error {
	if _, ok := m.byID[c.ID]; ok {
		return errors.New("UNIQUE constraint failed: corrections.id")
	}
	m.byID[c.ID] = c
	m.corrections = append(m.corrections, c)
	return nil
}

func (m *mockCorrectionRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *mockCorrectionRepository) ListByTitle(ctx context.Context, titleID int) ([]*secondary.CorrectionRecord, error) {
	var result []*secondary.CorrectionRecord
	for _, c := range m.corrections {
		if c.TitleID == titleID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCorrectionRepository) CountByTitle(ctx context.Context) ([]*secondary.TitleCorrectionCount, error) {
	return m.counts, nil
}

func (m *mockCorrectionRepository) Breakdown(ctx context.Context) ([]*secondary.BreakdownRecord, error) {
	return m.breakdown, nil
}

func (m *mockCorrectionRepository) Count(ctx context.Context) (int, error) {
	return len(m.corrections), nil
}

// mockStageRunner runs the stage body directly; commit semantics are the
// SQLite adapter's concern.
type mockStageRunner struct {
	stages []string
}

func (m *mockStageRunner) RunStage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	m.stages = append(m.stages, name)
	return fn(ctx)
}

// mockECFRSource implements secondary.ECFRSource for testing.
type mockECFRSource struct {
	agencies    *secondary.AgenciesPayload
	titles      *secondary.TitlesPayload
	corrections *secondary.CorrectionsPayload

	agenciesErr    error
	titlesErr      error
	correctionsErr error
}

func (m *mockECFRSource) FetchAgencies(ctx context.Context) (*secondary.AgenciesPayload, error) {
	if m.agenciesErr != nil {
		return nil, m.agenciesErr
	}
	return m.agencies, nil
}

func (m *mockECFRSource) FetchTitles(ctx context.Context) (*secondary.TitlesPayload, error) {
	if m.titlesErr != nil {
		return nil, m.titlesErr
	}
	return m.titles, nil
}

func (m *mockECFRSource) FetchCorrections(ctx context.Context) (*secondary.CorrectionsPayload, error) {
	if m.correctionsErr != nil {
		return nil, m.correctionsErr
	}
	return m.corrections, nil
}

// testMetrics returns metrics registered against a throwaway registry.
func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// newTestIngestService wires an IngestService over fresh mocks.
func newTestIngestService(source *mockECFRSource) (*IngestServiceImpl, *mockAgencyRepository, *mockTitleRepository, *mockAgencyTitleRepository, *mockCorrectionRepository) {
	agencyRepo := newMockAgencyRepository()
	titleRepo := newMockTitleRepository()
	linkRepo := newMockAgencyTitleRepository()
	corrRepo := newMockCorrectionRepository()
	svc := NewIngestService(source, agencyRepo, titleRepo, linkRepo, corrRepo, &mockStageRunner{}, testMetrics())
	return svc, agencyRepo, titleRepo, linkRepo, corrRepo
}
