package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole distinguishes ordinary users from catalog administrators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is an account in the identity store.
// At least one of Email and Phone is always present; both are unique across
// all users. Email is stored lower-cased. PasswordHash is a bcrypt hash and
// is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the slice of a User exposed when resolving trip owners and
// members for display. It deliberately omits phone, role, and timestamps.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

// Summary projects a User down to its display form.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
