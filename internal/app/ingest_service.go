// Package app implements the primary port services.
package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/cfrsync/internal/checksum"
	"github.com/example/cfrsync/internal/metrics"
	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/ports/secondary"
)

// IngestServiceImpl implements the IngestService interface: the four-stage
// synchronization batch from the remote registry into the store. Every
// stage is insert-only and idempotent by natural key, so re-running a
// partially applied stage completes the remainder without duplication.
type IngestServiceImpl struct {
	source     secondary.ECFRSource
	agencyRepo secondary.AgencyRepository
	titleRepo  secondary.TitleRepository
	linkRepo   secondary.AgencyTitleRepository
	corrRepo   secondary.CorrectionRepository
	stages     secondary.StageRunner
	metrics    *metrics.Metrics
}

// NewIngestService creates a new IngestService with injected dependencies.
func NewIngestService(
	source secondary.ECFRSource,
	agencyRepo secondary.AgencyRepository,
	titleRepo secondary.TitleRepository,
	linkRepo secondary.AgencyTitleRepository,
	corrRepo secondary.CorrectionRepository,
	stages secondary.StageRunner,
	m *metrics.Metrics,
) *IngestServiceImpl {
	return &IngestServiceImpl{
		source:     source,
		agencyRepo: agencyRepo,
		titleRepo:  titleRepo,
		linkRepo:   linkRepo,
		corrRepo:   corrRepo,
		stages:     stages,
		metrics:    m,
	}
}

// IngestAgencies fetches the agency tree and inserts unseen agencies.
// Top-level agencies and one level of children are walked; deeper nesting
// is not. A fetch failure aborts the stage before anything is applied.
func (s *IngestServiceImpl) IngestAgencies(ctx context.Context) (*primary.StageResult, error) {
	payload, err := s.source.FetchAgencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agencies: %w", err)
	}

	result := &primary.StageResult{}
	err = s.stages.RunStage(ctx, "agencies", func(ctx context.Context) error {
		for i := range payload.Agencies {
			agency := &payload.Agencies[i]
			if err := s.insertAgency(ctx, agency, "", result); err != nil {
				return err
			}
			for j := range agency.Children {
				if err := s.insertAgency(ctx, &agency.Children[j], agency.ShortName, result); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// insertAgency stores one agency payload unless its short name is missing
// or already stored. Roots get their own short name as parent key, so every
// stored agency has a non-null parent.
func (s *IngestServiceImpl) insertAgency(ctx context.Context, agency *secondary.AgencyPayload, parentShortName string, result *primary.StageResult) error {
	shortName := agency.ShortName
	if shortName == "" {
		s.skip(result)
		return nil
	}

	exists, err := s.agencyRepo.ExistsByShortName(ctx, shortName)
	if err != nil {
		return fmt.Errorf("failed to check agency %s: %w", shortName, err)
	}
	if exists {
		s.skip(result)
		return nil
	}

	refs := agency.CFRReferences
	if refs == nil {
		refs = []secondary.CFRReference{}
	}
	refsJSON, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("failed to serialize cfr references for %s: %w", shortName, err)
	}

	parent := parentShortName
	if parent == "" {
		parent = shortName
	}

	record := &secondary.AgencyRecord{
		ParentShortName: parent,
		ShortName:       shortName,
		Name:            agency.Name,
		Slug:            agency.Slug,
		Children:        "",
		CFRReference:    string(refsJSON),
	}
	record.Checksum = checksum.Compute(
		record.ShortName, record.Name, record.Slug,
		record.Children, record.CFRReference, record.ParentShortName,
	)

	if err := s.agencyRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to create agency %s: %w", shortName, err)
	}

	result.Created++
	s.metrics.AgenciesCreated.Inc()
	return nil
}

// IngestTitles fetches the title list and inserts unseen titles. Pairs
// missing the number or the name are skipped.
func (s *IngestServiceImpl) IngestTitles(ctx context.Context) (*primary.StageResult, error) {
	payload, err := s.source.FetchTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch titles: %w", err)
	}

	result := &primary.StageResult{}
	err = s.stages.RunStage(ctx, "titles", func(ctx context.Context) error {
		for _, title := range payload.Titles {
			if title.TitleNumber == 0 || title.TitleName == "" {
				s.skip(result)
				continue
			}

			exists, err := s.titleRepo.Exists(ctx, title.TitleNumber)
			if err != nil {
				return fmt.Errorf("failed to check title %d: %w", title.TitleNumber, err)
			}
			if exists {
				s.skip(result)
				continue
			}

			record := &secondary.TitleRecord{ID: title.TitleNumber, Name: title.TitleName}
			if err := s.titleRepo.Create(ctx, record); err != nil {
				return fmt.Errorf("failed to create title %d: %w", title.TitleNumber, err)
			}

			result.Created++
			s.metrics.TitlesCreated.Inc()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// BuildAssociations links every stored agency to the stored titles named by
// its CFR references. References to unknown titles are skipped silently:
// upstream data may reference titles not yet ingested.
func (s *IngestServiceImpl) BuildAssociations(ctx context.Context) (*primary.StageResult, error) {
	result := &primary.StageResult{}
	err := s.stages.RunStage(ctx, "associations", func(ctx context.Context) error {
		agencies, err := s.agencyRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list agencies: %w", err)
		}

		for _, agency := range agencies {
			if agency.CFRReference == "" {
				continue
			}

			var refs []secondary.CFRReference
			if err := json.Unmarshal([]byte(agency.CFRReference), &refs); err != nil {
				// Undecodable reference blobs are a data problem, not a
				// stage failure.
				s.skip(result)
				continue
			}

			for _, ref := range refs {
				titleID := ref.Title.Int()
				if titleID == 0 {
					continue
				}

				exists, err := s.titleRepo.Exists(ctx, titleID)
				if err != nil {
					return fmt.Errorf("failed to check title %d: %w", titleID, err)
				}
				if !exists {
					s.skip(result)
					continue
				}

				linked, err := s.linkRepo.Linked(ctx, agency.ID, titleID)
				if err != nil {
					return fmt.Errorf("failed to check link %s->%d: %w", agency.ShortName, titleID, err)
				}
				if linked {
					s.skip(result)
					continue
				}

				if err := s.linkRepo.Link(ctx, agency.ID, titleID); err != nil {
					return fmt.Errorf("failed to link %s to title %d: %w", agency.ShortName, titleID, err)
				}

				result.Created++
				s.metrics.AssociationsCreated.Inc()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// IngestCorrections fetches the corrections collection and inserts unseen
// corrections. A correction needs a non-empty id and a first CFR reference
// whose hierarchy resolves to a stored title; otherwise it is skipped.
func (s *IngestServiceImpl) IngestCorrections(ctx context.Context) (*primary.StageResult, error) {
	payload, err := s.source.FetchCorrections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch corrections: %w", err)
	}

	result := &primary.StageResult{}
	err = s.stages.RunStage(ctx, "corrections", func(ctx context.Context) error {
		for i := range payload.ECFRCorrections {
			item := &payload.ECFRCorrections[i]

			id := item.ID.String()
			if id == "" {
				s.skip(result)
				continue
			}

			if len(item.CFRReferences) == 0 {
				s.skip(result)
				continue
			}
			ref := item.CFRReferences[0]

			titleID := ref.Hierarchy.Title.Int()
			if titleID == 0 {
				s.skip(result)
				continue
			}

			titleExists, err := s.titleRepo.Exists(ctx, titleID)
			if err != nil {
				return fmt.Errorf("failed to check title %d: %w", titleID, err)
			}
			if !titleExists {
				s.skip(result)
				continue
			}

			exists, err := s.corrRepo.Exists(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to check correction %s: %w", id, err)
			}
			if exists {
				s.skip(result)
				continue
			}

			record := &secondary.CorrectionRecord{
				ID:               id,
				TitleID:          titleID,
				FRCitation:       item.FRCitation,
				CorrectiveAction: item.CorrectiveAction,
				ErrorCorrected:   item.ErrorCorrected,
				ErrorOccurred:    item.ErrorOccurred,
				LastModified:     item.LastModified,
				DisplayInTOC:     item.DisplayInTOC,
				Position:         item.Position,
				Year:             item.Year,
				TitleText:        item.Title,
				CFRReference:     ref.CFRReference,
				Chapter:          ref.Hierarchy.Chapter,
				Part:             ref.Hierarchy.Part,
				Section:          ref.Hierarchy.Section,
				Subchapter:       ref.Hierarchy.Subchapter,
				SubjectGroup:     ref.Hierarchy.SubjectGroup,
				Subpart:          ref.Hierarchy.Subpart,
				Subtitle:         ref.Hierarchy.Subtitle,
			}

			if err := s.corrRepo.Create(ctx, record); err != nil {
				return fmt.Errorf("failed to create correction %s: %w", id, err)
			}

			result.Created++
			s.metrics.CorrectionsCreated.Inc()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Run executes all four stages in order. A failed stage is recorded and
// the remaining stages still run: none of them depends on in-process state
// from an earlier stage, only on what is already stored.
func (s *IngestServiceImpl) Run(ctx context.Context, opts primary.IngestOptions) *primary.IngestReport {
	report := &primary.IngestReport{}

	if !opts.SkipAgencies {
		result, err := s.IngestAgencies(ctx)
		report.Stages = append(report.Stages, primary.StageReport{Name: "agencies", Result: result, Err: err})
	}

	result, err := s.IngestTitles(ctx)
	report.Stages = append(report.Stages, primary.StageReport{Name: "titles", Result: result, Err: err})

	result, err = s.BuildAssociations(ctx)
	report.Stages = append(report.Stages, primary.StageReport{Name: "associations", Result: result, Err: err})

	if !opts.SkipCorrections {
		result, err = s.IngestCorrections(ctx)
		report.Stages = append(report.Stages, primary.StageReport{Name: "corrections", Result: result, Err: err})
	}

	return report
}

func (s *IngestServiceImpl) skip(result *primary.StageResult) {
	result.Skipped++
	s.metrics.RecordsSkipped.Inc()
}

// Ensure IngestServiceImpl implements the interface.
var _ primary.IngestService = (*IngestServiceImpl)(nil)
