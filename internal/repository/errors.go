// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to operate on a record owned by someone else, while
// ErrConflict signals that an operation cannot proceed because of
// conflicting state (e.g. deleting a lot that still has occupied
// spots).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as releasing another user's
// reservation. Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as attempting to delete a parking lot with
// occupied spots. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrNoAvailability is returned by booking when the lot has no
// available spot left.
var ErrNoAvailability = errors.New("no available spots")

// ErrReservationClosed is returned when a release is attempted on a
// reservation that was already closed. The original cost is never
// recomputed.
var ErrReservationClosed = errors.New("reservation already closed")
