// core/pricing_engine.go
package core

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/signalsfoundry/lodging-simulator/model"
)

// LeadTimeTier maps a minimum booking lead time (days before check-in) to a
// price factor. Tiers are evaluated from the largest MinDays down; the
// first tier whose MinDays does not exceed the lead time applies. Factors
// must be non-increasing as lead time grows (earlier bookings are
// discounted) and reach 1.0 at zero lead.
type LeadTimeTier struct {
	MinDays int
	Factor  float64
}

// PricingPolicy holds every tunable of the quote formula. It is validated
// once at load time; after that the engine treats it as immutable.
type PricingPolicy struct {
	// SeasonMultipliers maps season labels to rate multipliers,
	// strictly ordered high > medium > low.
	SeasonMultipliers map[model.SeasonLabel]float64
	// OccupancyThresholds partition [0, 1) into closed-open brackets.
	// Strictly ascending.
	OccupancyThresholds []float64
	// OccupancyMultipliers parallels OccupancyThresholds, monotonically
	// non-decreasing.
	OccupancyMultipliers []float64
	// LeadTimeTiers is the advance-booking discount curve.
	LeadTimeTiers []LeadTimeTier
}

// Validate checks the policy's structural invariants. Any failure here is a
// fatal configuration error; the simulation must not start with a policy
// that could quote inconsistently.
func (p PricingPolicy) Validate() error {
	if len(p.SeasonMultipliers) == 0 {
		return fmt.Errorf("pricing: no season multipliers configured")
	}
	for label, m := range p.SeasonMultipliers {
		if m <= 0 {
			return fmt.Errorf("pricing: season %q multiplier %v is not positive", label, m)
		}
	}
	if len(p.OccupancyThresholds) == 0 {
		return fmt.Errorf("pricing: no occupancy thresholds configured")
	}
	if len(p.OccupancyThresholds) != len(p.OccupancyMultipliers) {
		return fmt.Errorf("pricing: %d occupancy thresholds but %d multipliers",
			len(p.OccupancyThresholds), len(p.OccupancyMultipliers))
	}
	for i, th := range p.OccupancyThresholds {
		if th < 0 || th >= 1 {
			return fmt.Errorf("pricing: occupancy threshold %v outside [0, 1)", th)
		}
		if i > 0 && th <= p.OccupancyThresholds[i-1] {
			return fmt.Errorf("pricing: occupancy thresholds not strictly ascending at index %d", i)
		}
		if i > 0 && p.OccupancyMultipliers[i] < p.OccupancyMultipliers[i-1] {
			return fmt.Errorf("pricing: occupancy multipliers decrease at index %d", i)
		}
	}
	if len(p.LeadTimeTiers) == 0 {
		return fmt.Errorf("pricing: no lead-time tiers configured")
	}
	tiers := append([]LeadTimeTier(nil), p.LeadTimeTiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinDays > tiers[j].MinDays })
	if tiers[len(tiers)-1].MinDays != 0 {
		return fmt.Errorf("pricing: lead-time tiers must include a 0-day tier")
	}
	for i, t := range tiers {
		if t.MinDays < 0 {
			return fmt.Errorf("pricing: lead-time tier with negative min days %d", t.MinDays)
		}
		if t.Factor <= 0 || t.Factor > 1 {
			return fmt.Errorf("pricing: lead-time factor %v outside (0, 1]", t.Factor)
		}
		if i > 0 && t.Factor < tiers[i-1].Factor {
			return fmt.Errorf("pricing: lead-time factors must not decrease toward zero lead")
		}
	}
	return nil
}

// PricingEngine computes nightly quotes. Quote is a pure function of its
// inputs and the static policy: no state, no side effects, identical inputs
// always give identical output. The admission controller relies on that to
// re-quote for diagnostics without touching inventory.
type PricingEngine struct {
	seasons *SeasonCalendar
	policy  PricingPolicy
	tiers   []LeadTimeTier // sorted by MinDays descending
}

// NewPricingEngine builds an engine from a validated policy.
func NewPricingEngine(seasons *SeasonCalendar, policy PricingPolicy) (*PricingEngine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	tiers := append([]LeadTimeTier(nil), policy.LeadTimeTiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinDays > tiers[j].MinDays })
	return &PricingEngine{seasons: seasons, policy: policy, tiers: tiers}, nil
}

// Quote computes the nightly price for a room type checked in on checkIn,
// given the occupancy rate at that date and the booking lead time in days:
//
//	price = roundHalfUp(base × season × occupancy × leadTime)
//
// Rounding is half-up to the nearest whole currency unit (292.5 → 293).
func (pe *PricingEngine) Quote(roomType model.RoomType, checkIn time.Time, occupancyRate float64, leadTimeDays int) int {
	base := float64(roomType.BaseRate)
	season := pe.seasonMultiplier(checkIn)
	occupancy := pe.occupancyMultiplier(occupancyRate)
	lead := pe.leadTimeFactor(leadTimeDays)
	return roundHalfUp(base * season * occupancy * lead)
}

func (pe *PricingEngine) seasonMultiplier(date time.Time) float64 {
	label := pe.seasons.SeasonFor(date)
	if m, ok := pe.policy.SeasonMultipliers[label]; ok {
		return m
	}
	// Labels outside the multiplier table price at base rate.
	return 1.0
}

// occupancyMultiplier applies the step function: the multiplier of the
// highest threshold not exceeding the rate. A rate exactly at a threshold
// takes that threshold's (higher) bracket; a rate below the lowest
// threshold takes the lowest bracket multiplier.
func (pe *PricingEngine) occupancyMultiplier(rate float64) float64 {
	selected := pe.policy.OccupancyMultipliers[0]
	for i, th := range pe.policy.OccupancyThresholds {
		if rate >= th {
			selected = pe.policy.OccupancyMultipliers[i]
		}
	}
	return selected
}

// leadTimeFactor walks the tiers from the furthest-out one down and applies
// the first whose MinDays the lead time reaches.
func (pe *PricingEngine) leadTimeFactor(leadTimeDays int) float64 {
	if leadTimeDays < 0 {
		leadTimeDays = 0
	}
	for _, t := range pe.tiers {
		if leadTimeDays >= t.MinDays {
			return t.Factor
		}
	}
	return 1.0
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
