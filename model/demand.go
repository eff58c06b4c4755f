package model

import "time"

// DemandRequest is one prospective guest asking for a stay. Requests are
// produced by the demand generator for a simulated day, evaluated exactly
// once by the admission controller, and then discarded.
//
// Invariants the generator guarantees (and the controller does not
// re-check): CheckIn < CheckOut, and PartySize never exceeds the capacity
// of the requested room type.
type DemandRequest struct {
	// ID is a short identifier drawn from the seeded RNG, so a fixed
	// seed reproduces identical IDs.
	ID string
	// RoomTypeID names the requested room type in the catalog.
	RoomTypeID string
	// CheckIn is the desired arrival date (UTC midnight).
	CheckIn time.Time
	// CheckOut is the desired departure date, exclusive.
	CheckOut time.Time
	// PartySize is the number of guests.
	PartySize int
	// MaxBudget is the highest nightly price the guest will accept,
	// in whole currency units.
	MaxBudget int
	// RequestedAt is the simulated "today" the request arrived on.
	RequestedAt time.Time
}

// Nights returns the stay length in whole nights.
func (r DemandRequest) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// LeadTimeDays returns the number of days between the request day and
// check-in.
func (r DemandRequest) LeadTimeDays() int {
	return int(r.CheckIn.Sub(r.RequestedAt).Hours() / 24)
}
