package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripView is the fully resolved trip snapshot handed back to clients:
// user references expanded to summaries, catalog references expanded to
// current catalog records, stale references pruned from display.
type TripView struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Destination string          `json:"destination,omitempty"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Owner       UserSummary     `json:"owner"`
	Members     []MemberView    `json:"members"`
	Itinerary   []DayView       `json:"itinerary"`
	Places      []TripPlaceView `json:"places"`
	Documents   []Document      `json:"documents"`
	Notes       string          `json:"notes,omitempty"`
	Status      TripStatus      `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MemberView pairs a member's resolved user summary with their role.
type MemberView struct {
	User UserSummary `json:"user"`
	Role MemberRole  `json:"role"`
}

// DayView is a Day with activity place references resolved.
type DayView struct {
	DayNumber  int            `json:"dayNumber"`
	Theme      string         `json:"theme,omitempty"`
	Date       string         `json:"date,omitempty"`
	Activities []ActivityView `json:"activities"`
}

// ActivityView is an Activity with its linked catalog place expanded.
// Place is nil when the activity has no link or the referenced place has
// been deleted from the catalog; PlaceName still carries the display text
// in both cases.
type ActivityView struct {
	Activity
	Place *Place `json:"placeDetails,omitempty"`
}

// TripPlaceView is one resolved entry of the trip places list. Catalog
// references carry the full current catalog record; custom entries carry
// only their trip-local fields, with Custom set.
type TripPlaceView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Country      string    `json:"country,omitempty"`
	City         string    `json:"city,omitempty"`
	Type         string    `json:"type,omitempty"`
	Fee          string    `json:"fee,omitempty"`
	GoogleMapURL string    `json:"googleMapUrl,omitempty"`
	Timing       string    `json:"timing,omitempty"`
	TimeToCover  string    `json:"timeToCover,omitempty"`
	Highlight    string    `json:"highlight,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Custom       bool      `json:"custom,omitempty"`
}

// ResolveTrip expands a trip's user and catalog references using the
// provided lookup maps. It is a pure function: the service layer fetches
// the referenced records and passes them in.
//
// Resolution is denormalization-tolerant by design: a places-list reference
// whose catalog record no longer exists is silently dropped from the view —
// the stored list is not modified. An activity whose linked place is gone
// keeps its text fields and simply loses the expanded record; missing
// owner or member users resolve to an id-only summary.
func ResolveTrip(t Trip, users map[uuid.UUID]User, places map[uuid.UUID]Place) TripView {
	v := TripView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Documents:   t.Documents,
		Notes:       t.Notes,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if v.Documents == nil {
		v.Documents = []Document{}
	}

	v.Owner = resolveUser(t.OwnerID, users)
	v.Members = make([]MemberView, 0, len(t.Members))
	for _, m := range t.Members {
		v.Members = append(v.Members, MemberView{User: resolveUser(m.UserID, users), Role: m.Role})
	}

	v.Itinerary = make([]DayView, 0, len(t.Itinerary))
	for _, d := range t.Itinerary {
		dv := DayView{
			DayNumber:  d.DayNumber,
			Theme:      d.Theme,
			Date:       d.Date,
			Activities: make([]ActivityView, 0, len(d.Activities)),
		}
		for _, a := range d.Activities {
			av := ActivityView{Activity: a}
			if a.PlaceID != nil {
				if p, ok := places[*a.PlaceID]; ok {
					av.Place = &p
				}
			}
			dv.Activities = append(dv.Activities, av)
		}
		v.Itinerary = append(v.Itinerary, dv)
	}

	v.Places = make([]TripPlaceView, 0, len(t.Places))
	for _, entry := range t.Places {
		if entry.Custom != nil {
			c := entry.Custom
			v.Places = append(v.Places, TripPlaceView{
				ID:           c.ID,
				Name:         c.Name,
				Country:      c.Country,
				City:         c.City,
				Type:         c.Type,
				GoogleMapURL: c.GoogleMapURL,
				Notes:        c.Notes,
				Custom:       true,
			})
			continue
		}
		p, ok := places[entry.PlaceID]
		if !ok {
			// Stale reference: the catalog record was deleted after being
			// added to this trip. Pruned from display, kept in storage.
			continue
		}
		v.Places = append(v.Places, TripPlaceView{
			ID:           p.ID,
			Name:         p.Name,
			Country:      p.Country,
			City:         p.City,
			Type:         p.Type,
			Fee:          p.Fee,
			GoogleMapURL: p.GoogleMapURL,
			Timing:       p.Timing,
			TimeToCover:  p.TimeToCover,
			Highlight:    p.Highlight,
			Notes:        p.Notes,
			ImageURL:     p.ImageURL,
		})
	}

	return v
}

func resolveUser(id uuid.UUID, users map[uuid.UUID]User) UserSummary {
	if u, ok := users[id]; ok {
		return u.Summary()
	}
	return UserSummary{ID: id}
}
