package domain

import (
	"time"

	"github.com/google/uuid"
)

// Place is a global, admin-curated catalog entry. Places are referenced by
// trips and itinerary activities, never embedded — the catalog record is the
// single source of truth and its identity is immutable once referenced.
type Place struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Country      string    `json:"country"`
	City         string    `json:"city,omitempty"`
	Type         string    `json:"type"`
	Fee          string    `json:"fee"`
	GoogleMapURL string    `json:"googleMapUrl,omitempty"`
	Timing       string    `json:"timing,omitempty"`
	TimeToCover  string    `json:"timeToCover,omitempty"`
	Highlight    string    `json:"highlight,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlaceFilter narrows catalog listings. All fields are optional; text fields
// match case-insensitively as substrings. Search matches against name,
// country, city, and notes.
type PlaceFilter struct {
	Country string
	City    string
	Type    string
	Search  string
}
