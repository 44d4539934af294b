package app

import (
	"context"
	"fmt"

	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/ports/secondary"
)

// StatusServiceImpl implements the StatusService interface.
type StatusServiceImpl struct {
	agencyRepo secondary.AgencyRepository
	titleRepo  secondary.TitleRepository
	linkRepo   secondary.AgencyTitleRepository
	corrRepo   secondary.CorrectionRepository
}

// NewStatusService creates a new StatusService with injected dependencies.
func NewStatusService(
	agencyRepo secondary.AgencyRepository,
	titleRepo secondary.TitleRepository,
	linkRepo secondary.AgencyTitleRepository,
	corrRepo secondary.CorrectionRepository,
) *StatusServiceImpl {
	return &StatusServiceImpl{
		agencyRepo: agencyRepo,
		titleRepo:  titleRepo,
		linkRepo:   linkRepo,
		corrRepo:   corrRepo,
	}
}

// Counts returns stored row counts per table.
func (s *StatusServiceImpl) Counts(ctx context.Context) (*primary.StoreCounts, error) {
	agencies, err := s.agencyRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count agencies: %w", err)
	}
	titles, err := s.titleRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count titles: %w", err)
	}
	links, err := s.linkRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count associations: %w", err)
	}
	corrections, err := s.corrRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count corrections: %w", err)
	}

	return &primary.StoreCounts{
		Agencies:     agencies,
		Titles:       titles,
		Associations: links,
		Corrections:  corrections,
	}, nil
}

// Ensure StatusServiceImpl implements the interface.
var _ primary.StatusService = (*StatusServiceImpl)(nil)
