package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripmate/backend/internal/domain"
	"github.com/tripmate/backend/internal/repo"
)

// PlaceService implements business logic for the global place catalog.
// Reads are public; writes are restricted to administrators at the HTTP
// layer. Deleting a place does not touch trips that reference it — their
// stored references go stale and are pruned from display at resolve time.
type PlaceService struct {
	places repo.PlaceRepo
}

// NewPlaceService constructs a PlaceService backed by the provided PlaceRepo.
func NewPlaceService(places repo.PlaceRepo) *PlaceService {
	return &PlaceService{places: places}
}

// Create validates and persists a new catalog place.
func (s *PlaceService) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	if err := validatePlace(&place); err != nil {
		return domain.Place{}, err
	}
	created, err := s.places.Create(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single catalog place by ID.
func (s *PlaceService) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.GetByID: %w", err)
	}
	return place, nil
}

// List returns a page of catalog places matching the filter plus the total
// match count. Always returns a non-nil slice.
func (s *PlaceService) List(ctx context.Context, filter domain.PlaceFilter, page domain.PaginationParams) ([]domain.Place, int64, error) {
	places, total, err := s.places.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlaceService.List: %w", err)
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, total, nil
}

// Update validates and persists changes to an existing place.
func (s *PlaceService) Update(ctx context.Context, place domain.Place) (domain.Place, error) {
	if err := validatePlace(&place); err != nil {
		return domain.Place{}, err
	}
	updated, err := s.places.Update(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a place from the catalog. Trips keep their stored
// references to it; resolution drops them from display.
func (s *PlaceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.places.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PlaceService.Delete: %w", err)
	}
	return nil
}

// validatePlace enforces the catalog rules common to Create and Update:
// name and country are required, text fields are trimmed, and type/fee get
// their defaults.
func validatePlace(p *domain.Place) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Country = strings.TrimSpace(p.Country)
	p.City = strings.TrimSpace(p.City)
	p.Type = strings.TrimSpace(p.Type)
	p.Fee = strings.TrimSpace(p.Fee)
	p.GoogleMapURL = strings.TrimSpace(p.GoogleMapURL)
	p.Timing = strings.TrimSpace(p.Timing)
	p.TimeToCover = strings.TrimSpace(p.TimeToCover)
	p.Highlight = strings.TrimSpace(p.Highlight)
	p.Notes = strings.TrimSpace(p.Notes)
	p.ImageURL = strings.TrimSpace(p.ImageURL)

	if p.Name == "" {
		return fmt.Errorf("%w: place name is required", domain.ErrValidation)
	}
	if p.Country == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if p.Type == "" {
		p.Type = "other"
	}
	if p.Fee == "" {
		p.Fee = "Free"
	}
	return nil
}
