// Package domain contains the core data types and business rules for the
// Tripmate application: trips, membership policy, the places list, and
// itinerary reconciliation. This package has zero knowledge of HTTP or SQL
// and is imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MemberRole is the access level of a non-owner trip member.
type MemberRole string

const (
	// RoleEditor members may mutate trip content but not membership.
	RoleEditor MemberRole = "editor"
	// RoleViewer members have read access only.
	RoleViewer MemberRole = "viewer"
)

// Valid reports whether r is one of the defined member roles.
func (r MemberRole) Valid() bool {
	return r == RoleEditor || r == RoleViewer
}

// TripStatus tracks a trip through its planning lifecycle.
type TripStatus string

const (
	StatusPlanning  TripStatus = "planning"
	StatusConfirmed TripStatus = "confirmed"
	StatusCompleted TripStatus = "completed"
)

// Member grants a user access to a trip with a role.
// The JSON field names are the storage format of the trips.members jsonb
// column and must not change without a migration.
type Member struct {
	UserID uuid.UUID  `json:"user"`
	Role   MemberRole `json:"role"`
}

// Document is a file or link attached to a trip (booking confirmation,
// ticket, map export). Documents have no lifecycle outside their trip.
type Document struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Trip is the aggregate root of the application. It exclusively owns its
// itinerary, places list, and documents; owner and members reference users,
// activities and place entries reference the catalog.
//
// All mutations are whole-document: callers load a snapshot, mutate it in
// memory, and persist the whole record back. Two concurrent editors race
// with last-writer-wins semantics; there is no per-field merging.
type Trip struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Destination string      `json:"destination,omitempty"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	OwnerID     uuid.UUID   `json:"owner"`
	Members     []Member    `json:"members"`
	Itinerary   []Day       `json:"itinerary"`
	Places      []TripPlace `json:"places"`
	Documents   []Document  `json:"documents"`
	Notes       string      `json:"notes,omitempty"`
	Status      TripStatus  `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsMember reports whether userID may see this trip: the owner and every
// entry in Members (any role) are members.
func (t *Trip) IsMember(userID uuid.UUID) bool {
	if t.OwnerID == userID {
		return true
	}
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// CanEdit reports whether userID may mutate trip content: the owner and
// members with the editor role. Viewers are members but cannot edit.
//
// Owner-only operations (membership changes, deletion) must compare against
// OwnerID directly — CanEdit is deliberately insufficient for those.
func (t *Trip) CanEdit(userID uuid.UUID) bool {
	if t.OwnerID == userID {
		return true
	}
	for _, m := range t.Members {
		if m.UserID == userID {
			return m.Role == RoleEditor
		}
	}
	return false
}

// MemberWith reports whether userID appears in the members list (the owner
// is not in the list and returns false here).
func (t *Trip) MemberWith(userID uuid.UUID) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// AddMember appends a member with the given role. Returns ErrConflict if
// the user is already a member and ErrValidation if the user is the owner
// (the owner is never listed as a member) or the role is unknown.
func (t *Trip) AddMember(userID uuid.UUID, role MemberRole) error {
	if role == "" {
		role = RoleEditor
	}
	if !role.Valid() {
		return ErrValidation
	}
	if userID == t.OwnerID {
		return ErrValidation
	}
	if t.MemberWith(userID) {
		return ErrConflict
	}
	t.Members = append(t.Members, Member{UserID: userID, Role: role})
	return nil
}

// RemoveMember deletes the member entry for userID. Removing a user who is
// not a member is a no-op; calling it twice is therefore idempotent.
func (t *Trip) RemoveMember(userID uuid.UUID) {
	kept := t.Members[:0]
	for _, m := range t.Members {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	t.Members = kept
}
