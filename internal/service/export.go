package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripmate/backend/internal/domain"
	"github.com/tripmate/backend/internal/repo"
)

// ExportService assembles a flat export of one trip's itinerary.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided TripRepo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one row per itinerary activity for the given trip, with
// day fields repeated per activity and one empty row for activity-less
// days. Any member may export — it is a read.
func (s *ExportService) Export(ctx context.Context, tripID, actorID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if !trip.IsMember(actorID) {
		return nil, fmt.Errorf("%w: you are not a member of this trip", domain.ErrForbidden)
	}
	return domain.ExportItinerary(trip), nil
}
