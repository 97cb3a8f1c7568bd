// Package queue contains the domain event types exchanged over RabbitMQ
// and the background consumer that records confirmed bookings.
package queue

import "time"

// ReservationConfirmedQueue is the durable queue name for confirmation
// events.
const ReservationConfirmedQueue = "reservation.confirmed"

// ReservationConfirmedEvent is published when a reservation reaches the
// confirmed status, either at creation or by a later transition.
type ReservationConfirmedEvent struct {
	ReservationID uint64    `json:"reservation_id"`
	Code          string    `json:"code"`
	PropertyID    uint64    `json:"property_id"`
	CheckIn       string    `json:"check_in"`  // YYYY-MM-DD
	CheckOut      string    `json:"check_out"` // YYYY-MM-DD
	TotalGuests   int       `json:"total_guests"`
	TotalAmount   string    `json:"total_amount"`
	Currency      string    `json:"currency"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}
