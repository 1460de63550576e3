package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when an authenticated actor lacks the membership
// or role a trip operation requires. It is always checked after existence,
// so a caller can distinguish "no such trip" from "not your trip".
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized is returned when no valid actor credentials accompany a
// request. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when a create would collide with existing state
// (duplicate email/phone registration, adding a user who is already a member).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
