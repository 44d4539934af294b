package app

import (
	"context"
	"fmt"

	"github.com/example/cfrsync/internal/checksum"
	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/ports/secondary"
)

// VerifyServiceImpl implements the VerifyService interface: a read-only
// integrity pass over stored agencies. Drift is reported, never repaired;
// operators decide whether to re-ingest.
type VerifyServiceImpl struct {
	agencyRepo secondary.AgencyRepository
}

// NewVerifyService creates a new VerifyService with injected dependencies.
func NewVerifyService(agencyRepo secondary.AgencyRepository) *VerifyServiceImpl {
	return &VerifyServiceImpl{agencyRepo: agencyRepo}
}

// VerifyChecksums recomputes every stored agency's checksum and returns the
// agencies whose stored digest no longer matches.
func (s *VerifyServiceImpl) VerifyChecksums(ctx context.Context) ([]*primary.DriftRecord, error) {
	agencies, err := s.agencyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}

	var drifted []*primary.DriftRecord
	for _, agency := range agencies {
		changed := checksum.HasChanged(
			agency.Checksum,
			agency.ShortName, agency.Name, agency.Slug,
			agency.Children, agency.CFRReference, agency.ParentShortName,
		)
		if changed {
			drifted = append(drifted, &primary.DriftRecord{
				ID:        agency.ID,
				ShortName: agency.ShortName,
				Name:      agency.Name,
			})
		}
	}

	return drifted, nil
}

// Ensure VerifyServiceImpl implements the interface.
var _ primary.VerifyService = (*VerifyServiceImpl)(nil)
