// Package repository implements data access over MySQL.  Sentinel errors
// defined here let handlers map failure scenarios onto HTTP statuses
// without inspecting driver errors.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource outside their access scope.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a mutation cannot proceed because of
// conflicting state, such as deleting a property that still has active
// reservations.  Handlers translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering with an email already on
// file.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidTransition is returned when a reservation status change is
// not legal from the current status.
var ErrInvalidTransition = errors.New("invalid status transition")
