// Package service contains the business logic for the Tripmate API.
// Services validate inputs, enforce the access-control policy, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripmate/backend/internal/domain"
	"github.com/tripmate/backend/internal/repo"
)

// TripService implements the trip aggregate operations: CRUD, membership,
// the places list, and itinerary activities.
//
// Every mutation follows the same shape: load the trip snapshot, run the
// policy check, mutate the document in memory, reconcile the itinerary
// where dates or itinerary content changed, and persist the whole document
// back. Two concurrent editors race with last-writer-wins semantics; the
// later Save overwrites the earlier editor's unseen changes.
type TripService struct {
	trips  repo.TripRepo
	users  repo.UserRepo
	places repo.PlaceRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, users repo.UserRepo, places repo.PlaceRepo) *TripService {
	return &TripService{trips: trips, users: users, places: places}
}

// Create validates and persists a new trip owned by ownerID. The itinerary
// is reconciled immediately so a trip created with both dates starts with
// its full run of empty days.
func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, in domain.TripInput) (domain.TripView, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.TripView{}, fmt.Errorf("%w: trip title is required", domain.ErrValidation)
	}
	if ownerID == uuid.Nil {
		return domain.TripView{}, fmt.Errorf("%w: owner is required", domain.ErrValidation)
	}

	start, err := parseDate(in.StartDate)
	if err != nil {
		return domain.TripView{}, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return domain.TripView{}, err
	}

	trip := domain.Trip{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Destination: strings.TrimSpace(in.Destination),
		StartDate:   start,
		EndDate:     end,
		OwnerID:     ownerID,
		Members:     []domain.Member{},
		Places:      []domain.TripPlace{},
		Documents:   []domain.Document{},
		Notes:       strings.TrimSpace(in.Notes),
		Status:      domain.StatusPlanning,
	}
	trip.Itinerary = domain.ReconcileItinerary(trip.StartDate, trip.EndDate, nil)

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return s.resolve(ctx, created, "service.TripService.Create")
}

// Get returns the fully resolved trip. Existence is checked before
// membership, so callers can distinguish a missing trip from a forbidden
// one; non-members receive domain.ErrForbidden.
func (s *TripService) Get(ctx context.Context, tripID, actorID uuid.UUID) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	if !trip.IsMember(actorID) {
		return domain.TripView{}, fmt.Errorf("%w: you are not a member of this trip", domain.ErrForbidden)
	}
	return s.resolve(ctx, trip, "service.TripService.Get")
}

// List returns all trips visible to the actor — owned or shared — most
// recently updated first. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, actorID uuid.UUID) ([]domain.TripView, error) {
	trips, err := s.trips.ListForUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}

	views := make([]domain.TripView, 0, len(trips))
	for _, t := range trips {
		v, err := s.resolve(ctx, t, "service.TripService.List")
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Update applies a partial update on behalf of an editor. The itinerary is
// reconciled against the (possibly changed) date range before persisting,
// so shrinking the range truncates trailing days and growing it appends
// empty ones. The owner cannot be changed through this operation.
func (s *TripService) Update(ctx context.Context, tripID, actorID uuid.UUID, patch domain.TripPatch) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if !trip.CanEdit(actorID) {
		return domain.TripView{}, fmt.Errorf("%w: you cannot edit this trip", domain.ErrForbidden)
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return domain.TripView{}, fmt.Errorf("%w: trip title is required", domain.ErrValidation)
		}
		trip.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		trip.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Destination != nil {
		trip.Destination = strings.TrimSpace(*patch.Destination)
	}
	if patch.Notes != nil {
		trip.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.Status != nil {
		trip.Status = *patch.Status
	}
	if patch.StartDate != nil {
		start, err := domain.ParseDate(*patch.StartDate)
		if err != nil {
			return domain.TripView{}, err
		}
		trip.StartDate = start
	}
	if patch.EndDate != nil {
		end, err := domain.ParseDate(*patch.EndDate)
		if err != nil {
			return domain.TripView{}, err
		}
		trip.EndDate = end
	}
	if patch.Itinerary != nil {
		trip.Itinerary = patch.Itinerary
	}
	if patch.Documents != nil {
		trip.Documents = patch.Documents
	}

	trip.Itinerary = domain.ReconcileItinerary(trip.StartDate, trip.EndDate, trip.Itinerary)

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return s.resolve(ctx, saved, "service.TripService.Update")
}

// Delete removes a trip. Only the owner may delete; editors receive
// domain.ErrForbidden. Referenced users and catalog places survive.
func (s *TripService) Delete(ctx context.Context, tripID, actorID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if trip.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can delete a trip", domain.ErrForbidden)
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AddMember grants userID access to the trip with the given role (editor
// when empty). Only the owner may add members; adding an existing member
// returns domain.ErrConflict; the target user must exist.
func (s *TripService) AddMember(ctx context.Context, tripID, actorID, userID uuid.UUID, role domain.MemberRole) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddMember: %w", err)
	}
	if trip.OwnerID != actorID {
		return domain.TripView{}, fmt.Errorf("%w: only the owner can add members", domain.ErrForbidden)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddMember: %w", err)
	}
	if err := trip.AddMember(userID, role); err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddMember: %w", err)
	}

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddMember: %w", err)
	}
	return s.resolve(ctx, saved, "service.TripService.AddMember")
}

// RemoveMember revokes userID's membership. Only the owner may remove
// members. Removing a user who is not a member is a no-op success, so the
// operation is idempotent.
func (s *TripService) RemoveMember(ctx context.Context, tripID, actorID, userID uuid.UUID) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.RemoveMember: %w", err)
	}
	if trip.OwnerID != actorID {
		return domain.TripView{}, fmt.Errorf("%w: only the owner can remove members", domain.ErrForbidden)
	}
	trip.RemoveMember(userID)

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.RemoveMember: %w", err)
	}
	return s.resolve(ctx, saved, "service.TripService.RemoveMember")
}

// AddPlace appends a catalog reference to the trip's places list. The
// operation is idempotent: adding an id already in the list succeeds
// without mutation and reports alreadyPresent. The place must exist in the
// catalog at add time; stale references only arise from later deletion.
func (s *TripService) AddPlace(ctx context.Context, tripID, actorID, placeID uuid.UUID) (view domain.TripView, alreadyPresent bool, err error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, false, fmt.Errorf("service.TripService.AddPlace: %w", err)
	}
	if !trip.CanEdit(actorID) {
		return domain.TripView{}, false, fmt.Errorf("%w: you cannot edit this trip", domain.ErrForbidden)
	}
	if _, err := s.places.GetByID(ctx, placeID); err != nil {
		return domain.TripView{}, false, fmt.Errorf("service.TripService.AddPlace: %w", err)
	}

	if !trip.AddPlaceRef(placeID) {
		view, err := s.resolve(ctx, trip, "service.TripService.AddPlace")
		return view, true, err
	}

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, false, fmt.Errorf("service.TripService.AddPlace: %w", err)
	}
	view, err = s.resolve(ctx, saved, "service.TripService.AddPlace")
	return view, false, err
}

// AddCustomPlace appends a trip-local custom place. The entry gets a
// freshly minted identifier, is flagged custom, and is never resolved
// against the catalog.
func (s *TripService) AddCustomPlace(ctx context.Context, tripID, actorID uuid.UUID, in domain.CustomPlaceInput) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddCustomPlace: %w", err)
	}
	if !trip.CanEdit(actorID) {
		return domain.TripView{}, fmt.Errorf("%w: you cannot edit this trip", domain.ErrForbidden)
	}
	if _, err := trip.AddCustomPlace(in); err != nil {
		return domain.TripView{}, err
	}

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddCustomPlace: %w", err)
	}
	return s.resolve(ctx, saved, "service.TripService.AddCustomPlace")
}

// RemovePlace removes the entry with the given id from the places list,
// matching catalog references and custom entries alike. Removing an id
// that is not in the list is a no-op success.
func (s *TripService) RemovePlace(ctx context.Context, tripID, actorID, placeID uuid.UUID) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.RemovePlace: %w", err)
	}
	if !trip.CanEdit(actorID) {
		return domain.TripView{}, fmt.Errorf("%w: you cannot edit this trip", domain.ErrForbidden)
	}
	trip.RemovePlace(placeID)

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.RemovePlace: %w", err)
	}
	return s.resolve(ctx, saved, "service.TripService.RemovePlace")
}

// AddActivity appends an activity to the day addressed by dayNumber in the
// reconciled itinerary. If the activity links a catalog place, that place
// is also added to the trip's places list (idempotently) — linking is
// sufficient to make the place appear on the trip's places tab.
func (s *TripService) AddActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber int, in domain.ActivityInput) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddActivity: %w", err)
	}
	if !trip.CanEdit(actorID) {
		return domain.TripView{}, fmt.Errorf("%w: you cannot edit this trip", domain.ErrForbidden)
	}

	activity, err := s.buildActivity(ctx, in)
	if err != nil {
		return domain.TripView{}, err
	}

	trip.Itinerary = domain.ReconcileItinerary(trip.StartDate, trip.EndDate, trip.Itinerary)
	day := findDay(trip.Itinerary, dayNumber)
	if day == nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddActivity: day %d: %w", dayNumber, domain.ErrNotFound)
	}
	day.Activities = append(day.Activities, activity)

	if activity.PlaceID != nil {
		trip.AddPlaceRef(*activity.PlaceID)
	}

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddActivity: %w", err)
	}
	return s.resolve(ctx, saved, "service.TripService.AddActivity")
}

// UpdateActivity replaces the activity at (dayNumber, index) in place.
// Addressing is positional: concurrent edits from two clients can clobber
// each other, which is the accepted last-writer-wins model.
func (s *TripService) UpdateActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber, index int, in domain.ActivityInput) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.UpdateActivity: %w", err)
	}
	if !trip.CanEdit(actorID) {
		return domain.TripView{}, fmt.Errorf("%w: you cannot edit this trip", domain.ErrForbidden)
	}

	activity, err := s.buildActivity(ctx, in)
	if err != nil {
		return domain.TripView{}, err
	}

	trip.Itinerary = domain.ReconcileItinerary(trip.StartDate, trip.EndDate, trip.Itinerary)
	day := findDay(trip.Itinerary, dayNumber)
	if day == nil || index < 0 || index >= len(day.Activities) {
		return domain.TripView{}, fmt.Errorf("service.TripService.UpdateActivity: day %d activity %d: %w", dayNumber, index, domain.ErrNotFound)
	}
	day.Activities[index] = activity

	if activity.PlaceID != nil {
		trip.AddPlaceRef(*activity.PlaceID)
	}

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.UpdateActivity: %w", err)
	}
	return s.resolve(ctx, saved, "service.TripService.UpdateActivity")
}

// RemoveActivity deletes the activity at (dayNumber, index). Removal is
// positional — subsequent activities on the day shift down one index.
func (s *TripService) RemoveActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber, index int) (domain.TripView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.RemoveActivity: %w", err)
	}
	if !trip.CanEdit(actorID) {
		return domain.TripView{}, fmt.Errorf("%w: you cannot edit this trip", domain.ErrForbidden)
	}

	trip.Itinerary = domain.ReconcileItinerary(trip.StartDate, trip.EndDate, trip.Itinerary)
	day := findDay(trip.Itinerary, dayNumber)
	if day == nil || index < 0 || index >= len(day.Activities) {
		return domain.TripView{}, fmt.Errorf("service.TripService.RemoveActivity: day %d activity %d: %w", dayNumber, index, domain.ErrNotFound)
	}
	day.Activities = append(day.Activities[:index], day.Activities[index+1:]...)

	saved, err := s.trips.Save(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.RemoveActivity: %w", err)
	}
	return s.resolve(ctx, saved, "service.TripService.RemoveActivity")
}

// buildActivity validates an activity input and fills PlaceName from the
// linked catalog record when the caller left it empty. An activity always
// carries display text: either a manual name or a linked place.
func (s *TripService) buildActivity(ctx context.Context, in domain.ActivityInput) (domain.Activity, error) {
	activity := domain.Activity{
		Time:        strings.TrimSpace(in.Time),
		EndTime:     strings.TrimSpace(in.EndTime),
		PlaceID:     in.PlaceID,
		PlaceName:   strings.TrimSpace(in.PlaceName),
		Description: strings.TrimSpace(in.Description),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if in.PlaceID != nil {
		place, err := s.places.GetByID(ctx, *in.PlaceID)
		if err != nil {
			return domain.Activity{}, fmt.Errorf("service.TripService.buildActivity: %w", err)
		}
		if activity.PlaceName == "" {
			activity.PlaceName = place.Name
		}
	}
	if activity.PlaceName == "" {
		return domain.Activity{}, fmt.Errorf("%w: activity place name is required", domain.ErrValidation)
	}
	return activity, nil
}

// resolve expands a trip's user and catalog references into a TripView.
func (s *TripService) resolve(ctx context.Context, trip domain.Trip, op string) (domain.TripView, error) {
	userIDs := []uuid.UUID{trip.OwnerID}
	for _, m := range trip.Members {
		userIDs = append(userIDs, m.UserID)
	}

	var placeIDs []uuid.UUID
	seen := map[uuid.UUID]bool{}
	addPlaceID := func(id uuid.UUID) {
		if !seen[id] {
			seen[id] = true
			placeIDs = append(placeIDs, id)
		}
	}
	for _, p := range trip.Places {
		if p.Custom == nil {
			addPlaceID(p.PlaceID)
		}
	}
	for _, d := range trip.Itinerary {
		for _, a := range d.Activities {
			if a.PlaceID != nil {
				addPlaceID(*a.PlaceID)
			}
		}
	}

	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("%s: resolve users: %w", op, err)
	}
	places, err := s.places.GetByIDs(ctx, placeIDs)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("%s: resolve places: %w", op, err)
	}

	return domain.ResolveTrip(trip, users, places), nil
}

// findDay returns a pointer into days for the entry with the given
// dayNumber, or nil when absent.
func findDay(days []domain.Day, dayNumber int) *domain.Day {
	for i := range days {
		if days[i].DayNumber == dayNumber {
			return &days[i]
		}
	}
	return nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return domain.ParseDate(*s)
}
