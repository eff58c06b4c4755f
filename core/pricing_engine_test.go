package core

import (
	"testing"

	"github.com/signalsfoundry/lodging-simulator/model"
)

func testPolicy() PricingPolicy {
	return PricingPolicy{
		SeasonMultipliers: map[model.SeasonLabel]float64{
			model.SeasonHigh:   1.3,
			model.SeasonMedium: 1.0,
			model.SeasonLow:    0.8,
		},
		OccupancyThresholds:  []float64{0.3, 0.5, 0.8, 0.9},
		OccupancyMultipliers: []float64{0.8, 0.9, 1.1, 1.25},
		LeadTimeTiers: []LeadTimeTier{
			{MinDays: 60, Factor: 0.85},
			{MinDays: 30, Factor: 0.90},
			{MinDays: 14, Factor: 0.95},
			{MinDays: 0, Factor: 1.0},
		},
	}
}

func testPricingEngine(t *testing.T) *PricingEngine {
	t.Helper()
	seasons, err := NewSeasonCalendar([]model.SeasonWindow{
		{Label: model.SeasonHigh, Start: "06-15", End: "09-15"},
		{Label: model.SeasonLow, Start: "01-06", End: "03-31"},
	}, model.SeasonMedium)
	if err != nil {
		t.Fatalf("NewSeasonCalendar failed: %v", err)
	}
	pe, err := NewPricingEngine(seasons, testPolicy())
	if err != nil {
		t.Fatalf("NewPricingEngine failed: %v", err)
	}
	return pe
}

func TestQuoteHighSeasonNearlyFull(t *testing.T) {
	pe := testPricingEngine(t)
	suite := model.RoomType{ID: "suite", Count: 3, Capacity: 4, BaseRate: 180}

	// High season (1.3), 95% occupancy (top bracket 1.25), 5 days out
	// (factor 1.0): 180 × 1.3 × 1.25 = 292.5, rounded half-up to 293.
	if got := pe.Quote(suite, date(t, "2026-07-10"), 0.95, 5); got != 293 {
		t.Fatalf("Quote = %d, want 293", got)
	}
}

func TestQuoteOccupancyStepFunction(t *testing.T) {
	pe := testPricingEngine(t)
	std := model.RoomType{ID: "standard", Count: 5, Capacity: 2, BaseRate: 100}
	checkIn := date(t, "2026-05-01") // medium season, multiplier 1.0

	cases := []struct {
		rate float64
		want int
	}{
		{0.0, 80}, // below the lowest threshold: lowest multiplier
		{0.1, 80},
		{0.3, 80}, // exactly at a threshold takes that bracket
		{0.49, 80},
		{0.5, 90}, // at 0.5 the 0.9 bracket applies
		{0.79, 90},
		{0.8, 110},
		{0.85, 110},
		{0.9, 125},
		{1.0, 125}, // fully booked stays in the top bracket
	}
	for _, c := range cases {
		if got := pe.Quote(std, checkIn, c.rate, 0); got != c.want {
			t.Fatalf("Quote at occupancy %v = %d, want %d", c.rate, got, c.want)
		}
	}
}

func TestQuoteLeadTimeDiscount(t *testing.T) {
	pe := testPricingEngine(t)
	std := model.RoomType{ID: "standard", Count: 5, Capacity: 2, BaseRate: 100}
	checkIn := date(t, "2026-05-01") // medium season; occupancy 0 → 0.8

	cases := []struct {
		lead int
		want int
	}{
		{90, 68}, // 100 × 0.8 × 0.85
		{60, 68},
		{45, 72}, // 100 × 0.8 × 0.90
		{30, 72},
		{20, 76}, // 100 × 0.8 × 0.95
		{14, 76},
		{5, 80}, // 100 × 0.8 × 1.0
		{0, 80},
		{-3, 80}, // negative lead clamps to zero
	}
	for _, c := range cases {
		if got := pe.Quote(std, checkIn, 0, c.lead); got != c.want {
			t.Fatalf("Quote at lead %d = %d, want %d", c.lead, got, c.want)
		}
	}
}

func TestQuoteIsPure(t *testing.T) {
	pe := testPricingEngine(t)
	std := model.RoomType{ID: "standard", Count: 5, Capacity: 2, BaseRate: 100}
	checkIn := date(t, "2026-07-01")

	first := pe.Quote(std, checkIn, 0.6, 10)
	for i := 0; i < 100; i++ {
		if got := pe.Quote(std, checkIn, 0.6, 10); got != first {
			t.Fatalf("Quote changed between identical calls: %d then %d", first, got)
		}
	}
}

func TestQuoteUnknownSeasonLabelPricesAtBase(t *testing.T) {
	seasons, err := NewSeasonCalendar([]model.SeasonWindow{
		{Label: "festival", Start: "07-01", End: "07-07"},
	}, model.SeasonMedium)
	if err != nil {
		t.Fatalf("NewSeasonCalendar failed: %v", err)
	}
	pe, err := NewPricingEngine(seasons, testPolicy())
	if err != nil {
		t.Fatalf("NewPricingEngine failed: %v", err)
	}
	std := model.RoomType{ID: "standard", Count: 5, Capacity: 2, BaseRate: 100}

	// "festival" has no multiplier entry: season factor 1.0.
	if got := pe.Quote(std, date(t, "2026-07-03"), 0, 0); got != 80 {
		t.Fatalf("Quote for unmapped season = %d, want 80", got)
	}
}

func TestPricingPolicyValidate(t *testing.T) {
	mutate := func(fn func(*PricingPolicy)) PricingPolicy {
		p := testPolicy()
		fn(&p)
		return p
	}

	cases := []struct {
		name   string
		policy PricingPolicy
	}{
		{"no season multipliers", mutate(func(p *PricingPolicy) { p.SeasonMultipliers = nil })},
		{"non-positive season multiplier", mutate(func(p *PricingPolicy) { p.SeasonMultipliers[model.SeasonLow] = 0 })},
		{"no thresholds", mutate(func(p *PricingPolicy) { p.OccupancyThresholds = nil })},
		{"threshold/multiplier length mismatch", mutate(func(p *PricingPolicy) { p.OccupancyMultipliers = p.OccupancyMultipliers[:2] })},
		{"threshold at 1.0", mutate(func(p *PricingPolicy) { p.OccupancyThresholds[3] = 1.0 })},
		{"thresholds not ascending", mutate(func(p *PricingPolicy) { p.OccupancyThresholds[1] = 0.3 })},
		{"multipliers decrease", mutate(func(p *PricingPolicy) { p.OccupancyMultipliers[3] = 0.5 })},
		{"no lead-time tiers", mutate(func(p *PricingPolicy) { p.LeadTimeTiers = nil })},
		{"missing zero-day tier", mutate(func(p *PricingPolicy) { p.LeadTimeTiers = []LeadTimeTier{{MinDays: 14, Factor: 0.95}} })},
		{"lead factor above 1", mutate(func(p *PricingPolicy) { p.LeadTimeTiers[3].Factor = 1.1 })},
		{"lead factors not monotonic", mutate(func(p *PricingPolicy) { p.LeadTimeTiers[0].Factor = 0.99 })},
	}
	for _, c := range cases {
		if err := c.policy.Validate(); err == nil {
			t.Fatalf("Validate accepted policy with %s", c.name)
		}
	}

	if err := testPolicy().Validate(); err != nil {
		t.Fatalf("Validate rejected a well-formed policy: %v", err)
	}
}
