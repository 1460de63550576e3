package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TripInput carries the caller-supplied fields for a new trip. Dates are
// "YYYY-MM-DD" strings; nil means unset. The owner is supplied separately
// by the service from the authenticated actor, never by the caller.
type TripInput struct {
	Title       string
	Description string
	Destination string
	StartDate   *string
	EndDate     *string
	Notes       string
}

// TripPatch is a partial update of a trip. Nil pointer fields are left
// unchanged; for the date fields an empty string clears the date. Nil
// slices leave the itinerary or documents unchanged. There is deliberately
// no owner field — the owner is immutable and anything a caller sends for
// it is dropped before it can reach the patch.
type TripPatch struct {
	Title       *string
	Description *string
	Destination *string
	StartDate   *string
	EndDate     *string
	Notes       *string
	Status      *TripStatus
	Itinerary   []Day
	Documents   []Document
}

// ActivityInput carries the caller-supplied fields for a new or replaced
// itinerary activity. When PlaceID is set and PlaceName is empty, the name
// is copied from the catalog record at add time so the activity always has
// display text.
type ActivityInput struct {
	Time        string
	EndTime     string
	PlaceID     *uuid.UUID
	PlaceName   string
	Description string
	Notes       string
}

// ParseDate parses a "YYYY-MM-DD" input string. Returns ErrValidation on
// malformed input and nil for the empty string, which callers use to clear
// a date.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrValidation, s)
	}
	return &t, nil
}
