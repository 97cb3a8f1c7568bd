// Package availability decides whether a candidate date interval on a
// property is bookable.  The check is pure: callers fetch the property's
// reservations and blocks first and pass them in, already filtered by the
// caller's access scope.
package availability

import (
	"time"

	"github.com/Hostizzy/hostizzy-pms/internal/dates"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// ConflictKind names the record type that blocked a candidate.
type ConflictKind string

const (
	ConflictReservation ConflictKind = "reservation"
	ConflictBlock       ConflictKind = "block"
)

// Conflict identifies the first record whose interval intersects the
// candidate, for user-facing diagnostics.
type Conflict struct {
	Kind ConflictKind `json:"kind"`
	ID   uint64       `json:"id"`
	// Code is set for reservation conflicts so staff can look the
	// booking up without exposing guest details.
	Code string `json:"code,omitempty"`
}

// Decision is the outcome of a bookability check.  Rejection is a normal
// result, not an error: callers branch on Bookable.
type Decision struct {
	Bookable bool      `json:"bookable"`
	Conflict *Conflict `json:"conflict,omitempty"`
}

// Check reports whether [checkIn, checkOut) can be booked given the
// property's existing reservations and availability blocks.  Cancelled
// reservations never conflict.  Touching endpoints do not conflict
// (back-to-back turnover is allowed).  A zero- or negative-night
// candidate is rejected with dates.ErrInvalidRange before any conflict
// scan.
func Check(checkIn, checkOut time.Time, reservations []model.Reservation, blocks []model.AvailabilityBlock) (Decision, error) {
	if _, err := dates.RoomNights(checkIn, checkOut); err != nil {
		return Decision{}, err
	}
	for i := range reservations {
		r := &reservations[i]
		if !r.BlocksAvailability() {
			continue
		}
		if dates.Overlap(checkIn, checkOut, r.CheckIn, r.CheckOut) {
			return Decision{Conflict: &Conflict{Kind: ConflictReservation, ID: r.ID, Code: r.Code}}, nil
		}
	}
	for i := range blocks {
		b := &blocks[i]
		if dates.Overlap(checkIn, checkOut, b.StartDate, b.EndDate) {
			return Decision{Conflict: &Conflict{Kind: ConflictBlock, ID: b.ID}}, nil
		}
	}
	return Decision{Bookable: true}, nil
}
