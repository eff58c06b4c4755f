// core/inventory_calendar.go
package core

import (
	"fmt"
	"time"

	"github.com/signalsfoundry/lodging-simulator/model"
)

// InventoryCalendar owns the authoritative occupancy state of the
// simulation: for every room type and every date in the bounded span, how
// many rooms are already committed, and how much nightly revenue those
// commitments earn.
//
// The span is known upfront (horizon plus the furthest bookable date), so
// state is kept in dense day-indexed arrays rather than date-keyed maps.
// The admission controller is the single writer; everything else only
// reads. There is no locking: the simulation is strictly sequential and
// runs that execute in parallel must each own their own calendar.
type InventoryCalendar struct {
	catalog *model.Catalog
	start   time.Time
	span    int

	// committed[roomTypeID][dayIndex] = rooms already booked that night.
	committed map[string][]int
	// revenue[dayIndex] = sum of nightly prices of stays covering that
	// night, across all room types.
	revenue []int
}

// NewInventoryCalendar builds an empty calendar covering spanDays starting
// at start (truncated to a UTC date).
func NewInventoryCalendar(catalog *model.Catalog, start time.Time, spanDays int) *InventoryCalendar {
	ic := &InventoryCalendar{
		catalog:   catalog,
		start:     DateOnly(start),
		span:      spanDays,
		committed: make(map[string][]int, catalog.Len()),
		revenue:   make([]int, spanDays),
	}
	for _, rt := range catalog.Types() {
		ic.committed[rt.ID] = make([]int, spanDays)
	}
	return ic
}

// Start returns the first date covered by the calendar.
func (ic *InventoryCalendar) Start() time.Time { return ic.start }

// Span returns the number of days the calendar covers.
func (ic *InventoryCalendar) Span() int { return ic.span }

// CapacityAvailable reports whether every night in [checkIn, checkOut) has
// at least one uncommitted room of the given type.
func (ic *InventoryCalendar) CapacityAvailable(roomTypeID string, checkIn, checkOut time.Time) bool {
	rt, ok := ic.catalog.Get(roomTypeID)
	if !ok {
		panic(fmt.Sprintf("inventory: unknown room type %q", roomTypeID))
	}
	days := ic.committed[roomTypeID]
	for i := ic.dayIndex(checkIn); i < ic.dayIndex(checkOut); i++ {
		if days[i] >= rt.Count {
			return false
		}
	}
	return true
}

// OccupancyRate returns committed/total for one room type on one date,
// in [0, 1].
func (ic *InventoryCalendar) OccupancyRate(roomTypeID string, date time.Time) float64 {
	rt, ok := ic.catalog.Get(roomTypeID)
	if !ok {
		panic(fmt.Sprintf("inventory: unknown room type %q", roomTypeID))
	}
	if rt.Count == 0 {
		return 0
	}
	return float64(ic.committed[roomTypeID][ic.dayIndex(date)]) / float64(rt.Count)
}

// AggregateOccupancyRate returns committed/total across all room types on
// one date.
func (ic *InventoryCalendar) AggregateOccupancyRate(date time.Time) float64 {
	total := ic.catalog.TotalRooms()
	if total == 0 {
		return 0
	}
	idx := ic.dayIndex(date)
	committed := 0
	for _, days := range ic.committed {
		committed += days[idx]
	}
	return float64(committed) / float64(total)
}

// RevenueOn returns the nightly revenue for one date: the sum of the
// nightly prices of every confirmed stay covering it.
func (ic *InventoryCalendar) RevenueOn(date time.Time) int {
	return ic.revenue[ic.dayIndex(date)]
}

// Commit books the reservation: it increments the committed count and
// nightly revenue for every night in [CheckIn, CheckOut).
//
// The caller must have verified CapacityAvailable first within the same
// admission decision. A commit that would exceed capacity on any night is
// a contract violation in the caller's ordering and panics rather than
// silently corrupting state.
func (ic *InventoryCalendar) Commit(res model.Reservation) {
	if res.Status != model.StatusConfirmed {
		panic(fmt.Sprintf("inventory: commit of non-confirmed reservation %s", res.ID))
	}
	rt, ok := ic.catalog.Get(res.RoomTypeID)
	if !ok {
		panic(fmt.Sprintf("inventory: unknown room type %q", res.RoomTypeID))
	}
	from, to := ic.dayIndex(res.CheckIn), ic.dayIndex(res.CheckOut)
	days := ic.committed[res.RoomTypeID]
	for i := from; i < to; i++ {
		if days[i] >= rt.Count {
			panic(fmt.Sprintf("inventory: commit of %s would exceed capacity of %q on day %d",
				res.ID, res.RoomTypeID, i))
		}
	}
	for i := from; i < to; i++ {
		days[i]++
		ic.revenue[i] += res.NightlyPrice
	}
}

// Snapshot recomputes the occupancy picture for one date from the
// committed state. It is derived on every call, never cached.
func (ic *InventoryCalendar) Snapshot(date time.Time) model.OccupancySnapshot {
	idx := ic.dayIndex(date)
	snap := model.OccupancySnapshot{
		Date:      DateOnly(date),
		RoomTypes: make([]model.RoomTypeOccupancy, 0, ic.catalog.Len()),
	}
	for _, rt := range ic.catalog.Types() {
		committed := ic.committed[rt.ID][idx]
		occ := model.RoomTypeOccupancy{
			RoomTypeID: rt.ID,
			Committed:  committed,
			Total:      rt.Count,
		}
		if rt.Count > 0 {
			occ.Rate = float64(committed) / float64(rt.Count)
		}
		snap.RoomTypes = append(snap.RoomTypes, occ)
		snap.Committed += committed
		snap.Total += rt.Count
	}
	if snap.Total > 0 {
		snap.AggregateRate = float64(snap.Committed) / float64(snap.Total)
	}
	return snap
}

// dayIndex maps a date onto the dense day arrays. Dates outside the span
// indicate a defect in whoever produced them (the generator and loop are
// bounded by construction), so this panics instead of returning an error.
func (ic *InventoryCalendar) dayIndex(date time.Time) int {
	idx := int(DateOnly(date).Sub(ic.start).Hours() / 24)
	if idx < 0 || idx > ic.span {
		panic(fmt.Sprintf("inventory: date %s outside simulation span [%s, +%dd)",
			date.Format("2006-01-02"), ic.start.Format("2006-01-02"), ic.span))
	}
	return idx
}

// DateOnly truncates a time to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
