package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation statuses.  Tentative and confirmed reservations progress to
// completed after checkout; cancelled is terminal.  Cancelled reservations
// never block availability.
const (
	StatusTentative = "tentative"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking channels.
const (
	ChannelDirect  = "direct"
	ChannelAirbnb  = "airbnb"
	ChannelMMT     = "mmt"
	ChannelBooking = "booking"
	ChannelOther   = "other"
)

// Reservation records a guest stay on a property over the half-open date
// interval [CheckIn, CheckOut) — the checkout day is not an occupied
// night.  Monetary fields use decimals; NULL columns are normalized to
// zero when rows are scanned so the aggregation layer never sees missing
// amounts.
//
// Fields:
//  ID                – primary key identifier.
//  Code              – human-readable reservation code (unique).
//  PropertyID        – property being booked.
//  PrimaryGuestID    – lead guest (nullable until KYC).
//  Channel           – booking channel (direct, airbnb, mmt, booking, other).
//  CheckIn, CheckOut – stay interval, checkout exclusive.
//  Adults, Children  – guest counts; TotalGuests must not exceed the
//                      property's MaxGuests.
//  Status            – one of the Status* constants.
//  BaseRatePerNight, ExtraGuestFeeTotal, CleaningFeeTotal, TaxesTotal,
//  DiscountTotal, TotalAmount – monetary breakdown.
//  Currency          – ISO currency code, e.g. "INR".
//  Notes             – free-form staff notes (nullable).
//  CreatedBy         – profile that created the record (nullable).
type Reservation struct {
	ID                 uint64          // reservations.id
	Code               string          // reservations.reservation_code
	PropertyID         uint64          // reservations.property_id
	PrimaryGuestID     *uint64         // reservations.primary_guest_id (nullable)
	Channel            string          // reservations.channel
	CheckIn            time.Time       // reservations.check_in
	CheckOut           time.Time       // reservations.check_out
	Adults             int             // reservations.adults
	Children           int             // reservations.children
	TotalGuests        int             // reservations.total_guests
	Status             string          // reservations.status
	BaseRatePerNight   decimal.Decimal // reservations.base_rate_per_night
	ExtraGuestFeeTotal decimal.Decimal // reservations.extra_guest_fee_total
	CleaningFeeTotal   decimal.Decimal // reservations.cleaning_fee_total
	TaxesTotal         decimal.Decimal // reservations.taxes_total
	DiscountTotal      decimal.Decimal // reservations.discount_total
	TotalAmount        decimal.Decimal // reservations.total_amount
	Currency           string          // reservations.currency
	Notes              *string         // reservations.notes (nullable)
	CreatedBy          *uint64         // reservations.created_by (nullable)
	CreatedAt          time.Time       // reservations.created_at
	UpdatedAt          time.Time       // reservations.updated_at
}

// BlocksAvailability reports whether the reservation's status keeps its
// date interval off the market.
func (r *Reservation) BlocksAvailability() bool {
	switch r.Status {
	case StatusTentative, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change is legal: tentative may
// confirm or cancel, confirmed may complete or cancel, and the terminal
// states accept nothing.
func (r *Reservation) CanTransitionTo(next string) bool {
	switch r.Status {
	case StatusTentative:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// ReservationGuest links additional guests to a reservation.  Role is
// "primary" or "secondary".
type ReservationGuest struct {
	ID            uint64    // reservation_guests.id
	ReservationID uint64    // reservation_guests.reservation_id
	GuestID       uint64    // reservation_guests.guest_id
	Role          string    // reservation_guests.role
	CreatedAt     time.Time // reservation_guests.created_at
}
