package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CustomPlace is a trip-local place record with no counterpart in the global
// catalog. It exists only inside its parent trip and is never resolved
// against the catalog. The Custom flag is always true in the stored form so
// older records and external consumers can distinguish the two entry shapes.
type CustomPlace struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	Type         string    `json:"type,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	GoogleMapURL string    `json:"googleMapUrl"`
	Custom       bool      `json:"custom"`
}

// CustomPlaceInput carries the user-supplied fields for a new custom place.
// Name and GoogleMapURL are required; everything else is optional.
type CustomPlaceInput struct {
	Name         string
	City         string
	Country      string
	Type         string
	Notes        string
	GoogleMapURL string
}

// TripPlace is one entry in a trip's places list: either a reference to a
// catalog place or an inline custom place. Exactly one variant is set —
// Custom is non-nil for custom entries, otherwise PlaceID holds the catalog
// id.
type TripPlace struct {
	PlaceID uuid.UUID
	Custom  *CustomPlace
}

// ID returns the identifier of whichever variant is set: the catalog id for
// references, the minted local id for custom entries.
func (p TripPlace) ID() uuid.UUID {
	if p.Custom != nil {
		return p.Custom.ID
	}
	return p.PlaceID
}

// MarshalJSON stores references as a bare id string and custom entries as
// the full inline object, matching the trips.places jsonb column format.
func (p TripPlace) MarshalJSON() ([]byte, error) {
	if p.Custom != nil {
		return json.Marshal(p.Custom)
	}
	return json.Marshal(p.PlaceID.String())
}

// UnmarshalJSON accepts either encoding produced by MarshalJSON.
func (p *TripPlace) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("trip place id %q: %w", s, err)
		}
		*p = TripPlace{PlaceID: id}
		return nil
	}
	var c CustomPlace
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	c.Custom = true
	*p = TripPlace{Custom: &c}
	return nil
}

// HasPlace reports whether id is already present in the trip's places list,
// matching both catalog references and custom entries' local ids.
func (t *Trip) HasPlace(id uuid.UUID) bool {
	for _, p := range t.Places {
		if p.ID() == id {
			return true
		}
	}
	return false
}

// AddPlaceRef appends a catalog reference to the places list. The operation
// is idempotent: if the id is already present the list is left untouched and
// added is false, which callers report as "already in list" success.
func (t *Trip) AddPlaceRef(placeID uuid.UUID) (added bool) {
	if t.HasPlace(placeID) {
		return false
	}
	t.Places = append(t.Places, TripPlace{PlaceID: placeID})
	return true
}

// AddCustomPlace validates input, mints a local identifier, and appends a
// custom entry. All text fields are trimmed. Returns ErrValidation when the
// required name or map URL is missing.
func (t *Trip) AddCustomPlace(in CustomPlaceInput) (CustomPlace, error) {
	c := CustomPlace{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		City:         strings.TrimSpace(in.City),
		Country:      strings.TrimSpace(in.Country),
		Type:         strings.TrimSpace(in.Type),
		Notes:        strings.TrimSpace(in.Notes),
		GoogleMapURL: strings.TrimSpace(in.GoogleMapURL),
		Custom:       true,
	}
	if c.Name == "" {
		return CustomPlace{}, fmt.Errorf("%w: place name is required", ErrValidation)
	}
	if c.GoogleMapURL == "" {
		return CustomPlace{}, fmt.Errorf("%w: googleMapUrl is required", ErrValidation)
	}
	t.Places = append(t.Places, TripPlace{Custom: &c})
	return c, nil
}

// RemovePlace removes the entry whose id matches, whether it is a catalog
// reference or a custom entry's local id. Removing an id that is not in the
// list is a no-op, not an error.
func (t *Trip) RemovePlace(id uuid.UUID) {
	kept := t.Places[:0]
	for _, p := range t.Places {
		if p.ID() != id {
			kept = append(kept, p)
		}
	}
	t.Places = kept
}
