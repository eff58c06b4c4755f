package model

import "time"

// RoomTypeOccupancy is the committed/total pair for a single room type on a
// single date.
type RoomTypeOccupancy struct {
	RoomTypeID string
	Committed  int
	Total      int
	Rate       float64
}

// OccupancySnapshot is the per-room-type and aggregate occupancy for one
// date. Snapshots are always recomputed from the inventory calendar's
// committed state, never cached.
type OccupancySnapshot struct {
	Date          time.Time
	RoomTypes     []RoomTypeOccupancy
	Committed     int
	Total         int
	AggregateRate float64
}

// DayResult is everything the simulation hands to exporters for one
// simulated day: the day's occupancy, the revenue earned by stays covering
// that date, and every reservation record (confirmed and rejected)
// produced that day.
type DayResult struct {
	// Day is the zero-based offset from the simulation start date.
	Day int
	// Date is the simulated calendar date.
	Date time.Time
	// Season is the label the season calendar assigned to Date.
	Season SeasonLabel
	// Requests is how many demand requests arrived.
	Requests int
	// Accepted and Rejected partition Requests.
	Accepted int
	Rejected int
	// Revenue is the sum of nightly prices of all confirmed stays
	// covering Date, in whole currency units.
	Revenue int
	// Snapshot is the end-of-day occupancy for Date.
	Snapshot OccupancySnapshot
	// Reservations holds the day's records in arrival order.
	Reservations []Reservation
}

// RevenueAnalysis summarizes revenue and occupancy over a trailing window.
type RevenueAnalysis struct {
	Start               time.Time
	Days                int
	TotalRevenue        int
	AverageDailyRevenue float64
	AverageOccupancy    float64
	DailyRevenue        []int
	DailyOccupancy      []float64
}

// SuggestionAction is the direction of a suggested base-rate change.
type SuggestionAction string

const (
	SuggestIncrease SuggestionAction = "increase"
	SuggestDecrease SuggestionAction = "decrease"
	SuggestNoChange SuggestionAction = "no_change"
)

// PriceSuggestion is a read-only recommendation derived from trailing
// occupancy. It never feeds back into the simulation.
type PriceSuggestion struct {
	RoomTypeID        string
	CurrentBaseRate   int
	Action            SuggestionAction
	AdjustmentPct     float64
	SuggestedBaseRate int
	Reason            string
}

// RunSummary aggregates a completed simulation run.
type RunSummary struct {
	RunID             string
	StartDate         time.Time
	EndDate           time.Time
	Days              int
	TotalRequests     int
	TotalReservations int
	TotalRejections   int
	AcceptanceRate    float64
	TotalRevenue      int
	AverageOccupancy  float64
}
