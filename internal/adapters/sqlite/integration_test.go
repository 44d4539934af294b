package sqlite_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/cfrsync/internal/adapters/sqlite"
	"github.com/example/cfrsync/internal/app"
	"github.com/example/cfrsync/internal/metrics"
	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/ports/secondary"
)

// fakeSource feeds canned payloads through the full pipeline.
type fakeSource struct {
	agencies    secondary.AgenciesPayload
	titles      secondary.TitlesPayload
	corrections secondary.CorrectionsPayload
}

func (f *fakeSource) FetchAgencies(ctx context.Context) (*secondary.AgenciesPayload, error) {
	return &f.agencies, nil
}

func (f *fakeSource) FetchTitles(ctx context.Context) (*secondary.TitlesPayload, error) {
	return &f.titles, nil
}

func (f *fakeSource) FetchCorrections(ctx context.Context) (*secondary.CorrectionsPayload, error) {
	return &f.corrections, nil
}

func newPipeline(t *testing.T, source secondary.ECFRSource) (*app.IngestServiceImpl, *app.CorrectionsServiceImpl, *app.VerifyServiceImpl, *app.StatusServiceImpl) {
	t.Helper()
	testDB := setupTestDB(t)

	agencyRepo := sqlite.NewAgencyRepository(testDB)
	titleRepo := sqlite.NewTitleRepository(testDB)
	linkRepo := sqlite.NewAgencyTitleRepository(testDB)
	corrRepo := sqlite.NewCorrectionRepository(testDB)
	stages := sqlite.NewStageRunner(testDB)
	m := metrics.New(prometheus.NewRegistry())

	ingest := app.NewIngestService(source, agencyRepo, titleRepo, linkRepo, corrRepo, stages, m)
	corrections := app.NewCorrectionsService(titleRepo, corrRepo)
	verify := app.NewVerifyService(agencyRepo)
	status := app.NewStatusService(agencyRepo, titleRepo, linkRepo, corrRepo)
	return ingest, corrections, verify, status
}

func pipelineSource() *fakeSource {
	return &fakeSource{
		agencies: secondary.AgenciesPayload{
			Agencies: []secondary.AgencyPayload{
				{
					ShortName: "ABC",
					Name:      "Agency of Basic Corrections",
					Slug:      "agency-of-basic-corrections",
					CFRReferences: []secondary.CFRReference{
						{Title: 5, Chapter: "I"},
					},
				},
			},
		},
		titles: secondary.TitlesPayload{
			Titles: []secondary.TitlePayload{
				{TitleNumber: 5, TitleName: "Title Five"},
			},
		},
		corrections: secondary.CorrectionsPayload{
			ECFRCorrections: []secondary.CorrectionPayload{
				{
					ID:               "c1",
					FRCitation:       "85 FR 100",
					CorrectiveAction: "Revised paragraph (a)",
					Year:             2020,
					CFRReferences: []secondary.CorrectionCFRReference{
						{
							CFRReference: "5 CFR 12",
							Hierarchy: secondary.CorrectionHierarchy{
								Title:   5,
								Section: "12",
							},
						},
					},
				},
			},
		},
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	ingest, corrections, verify, status := newPipeline(t, pipelineSource())
	ctx := context.Background()

	report := ingest.Run(ctx, primary.IngestOptions{})
	if report.Failed() {
		t.Fatalf("ingest failed: %+v", report.Stages)
	}

	counts, err := status.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts.Agencies != 1 || counts.Titles != 1 || counts.Associations != 1 || counts.Corrections != 1 {
		t.Fatalf("unexpected counts after ingest: %+v", counts)
	}

	summary, err := corrections.TitleSummary(ctx, 5)
	if err != nil {
		t.Fatalf("TitleSummary failed: %v", err)
	}
	if summary.Name != "Title Five" || summary.Total != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if len(summary.Grouped) != 1 || summary.Grouped[0].Key != "Section: 12" {
		t.Fatalf("unexpected grouping: %+v", summary.Grouped)
	}
	entry := summary.Grouped[0].Entries[0]
	if entry.Year != "2020" || entry.FRCitation != "85 FR 100" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	drifted, err := verify.VerifyChecksums(ctx)
	if err != nil {
		t.Fatalf("VerifyChecksums failed: %v", err)
	}
	if len(drifted) != 0 {
		t.Errorf("fresh ingest should verify clean, got %+v", drifted)
	}
}

func TestPipelineDoubleIngestIdempotent(t *testing.T) {
	ingest, _, _, status := newPipeline(t, pipelineSource())
	ctx := context.Background()

	if report := ingest.Run(ctx, primary.IngestOptions{}); report.Failed() {
		t.Fatalf("first ingest failed: %+v", report.Stages)
	}
	first, err := status.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}

	report := ingest.Run(ctx, primary.IngestOptions{})
	if report.Failed() {
		t.Fatalf("second ingest failed: %+v", report.Stages)
	}
	for _, stage := range report.Stages {
		if stage.Result.Created != 0 {
			t.Errorf("stage %s created rows on re-run: %d", stage.Name, stage.Result.Created)
		}
	}

	second, err := status.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if *first != *second {
		t.Errorf("counts changed on re-run: %+v vs %+v", first, second)
	}
}

func TestPipelineVerifyDetectsManualEdit(t *testing.T) {
	testDB := setupTestDB(t)
	agencyRepo := sqlite.NewAgencyRepository(testDB)
	titleRepo := sqlite.NewTitleRepository(testDB)
	linkRepo := sqlite.NewAgencyTitleRepository(testDB)
	corrRepo := sqlite.NewCorrectionRepository(testDB)
	stages := sqlite.NewStageRunner(testDB)
	m := metrics.New(prometheus.NewRegistry())
	ingest := app.NewIngestService(pipelineSource(), agencyRepo, titleRepo, linkRepo, corrRepo, stages, m)
	verify := app.NewVerifyService(agencyRepo)
	ctx := context.Background()

	if report := ingest.Run(ctx, primary.IngestOptions{}); report.Failed() {
		t.Fatalf("ingest failed: %+v", report.Stages)
	}

	// Out-of-band edit to a checksummed column.
	if _, err := testDB.Exec("UPDATE agency SET name = 'Edited Name' WHERE short_name = 'ABC'"); err != nil {
		t.Fatal(err)
	}

	drifted, err := verify.VerifyChecksums(ctx)
	if err != nil {
		t.Fatalf("VerifyChecksums failed: %v", err)
	}
	if len(drifted) != 1 || drifted[0].ShortName != "ABC" {
		t.Fatalf("expected ABC flagged as drifted, got %+v", drifted)
	}
}
