package model

import "time"

// ReservationStatus is the outcome of evaluating one demand request.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRejected  ReservationStatus = "rejected"
)

// Rejection reasons recorded on rejected reservations.
const (
	ReasonNoCapacity = "no_capacity"
	ReasonOverBudget = "over_budget"
)

// Reservation is the record produced for every evaluated request, whether
// admitted or not. A confirmed reservation is immutable from the moment it
// is committed: the nightly price never changes even if occupancy on the
// covered dates changes later.
type Reservation struct {
	// ID identifies the reservation. It is derived from the request ID
	// (each request is evaluated exactly once) so that runs with the
	// same seed produce byte-identical records.
	ID string
	// RequestID is the originating demand request.
	RequestID string
	// RoomTypeID is the booked room type.
	RoomTypeID string
	// CheckIn and CheckOut bound the stay; CheckOut is exclusive.
	CheckIn  time.Time
	CheckOut time.Time
	// PartySize is carried over from the request for reporting.
	PartySize int
	// NightlyPrice is the committed price per night in whole currency
	// units. Zero for rejected reservations.
	NightlyPrice int
	// TotalPrice is exactly NightlyPrice × nights.
	TotalPrice int
	// Status is confirmed or rejected.
	Status ReservationStatus
	// Reason explains a rejection ("no_capacity", "over_budget");
	// empty for confirmed reservations.
	Reason string
	// CreatedOn is the simulated day the decision was made.
	CreatedOn time.Time
}

// Nights returns the stay length in whole nights.
func (r Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}
