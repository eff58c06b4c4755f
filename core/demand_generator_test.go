package core

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/signalsfoundry/lodging-simulator/model"
)

func testProfile() DemandProfile {
	return DemandProfile{
		RequestsPerDay: 15,
		SeasonDemand: map[model.SeasonLabel]float64{
			model.SeasonHigh:   1.5,
			model.SeasonMedium: 1.0,
			model.SeasonLow:    0.7,
		},
		SeasonBudget: map[model.SeasonLabel]float64{
			model.SeasonHigh:   1.2,
			model.SeasonMedium: 1.0,
			model.SeasonLow:    0.8,
		},
		CheckInMinOffset: 1,
		CheckInMaxOffset: 30,
		StayWeights:      []int{10, 30, 25, 15, 10, 5, 5},
		PartyWeights:     []int{5, 40, 30, 20, 5},
		BudgetBandMin:    0.7,
		BudgetBandMax:    1.3,
	}
}

func testDemandGenerator(t *testing.T, weather DemandFactorProvider) *DemandGenerator {
	t.Helper()
	seasons, err := NewSeasonCalendar([]model.SeasonWindow{
		{Label: model.SeasonHigh, Start: "06-15", End: "09-15"},
		{Label: model.SeasonLow, Start: "01-06", End: "03-31"},
	}, model.SeasonMedium)
	if err != nil {
		t.Fatalf("NewSeasonCalendar failed: %v", err)
	}
	g, err := NewDemandGenerator(testCatalog(), seasons, testProfile(), weather)
	if err != nil {
		t.Fatalf("NewDemandGenerator failed: %v", err)
	}
	return g
}

func TestNextDayRequestsDeterministic(t *testing.T) {
	day := date(t, "2026-07-01")

	g1 := testDemandGenerator(t, nil)
	g2 := testDemandGenerator(t, nil)
	r1 := g1.NextDayRequests(day, rand.New(rand.NewSource(42)))
	r2 := g2.NextDayRequests(day, rand.New(rand.NewSource(42)))

	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("same seed produced different request streams")
	}

	// A different seed should, with overwhelming likelihood, diverge.
	r3 := testDemandGenerator(t, nil).NextDayRequests(day, rand.New(rand.NewSource(7)))
	if reflect.DeepEqual(r1, r3) {
		t.Fatalf("different seeds produced identical request streams")
	}
}

func TestNextDayRequestsFieldBounds(t *testing.T) {
	g := testDemandGenerator(t, nil)
	profile := testProfile()
	catalog := testCatalog()
	rng := rand.New(rand.NewSource(1))

	day := date(t, "2026-07-01")
	for d := 0; d < 30; d++ {
		today := day.AddDate(0, 0, d)
		for _, req := range g.NextDayRequests(today, rng) {
			if len(req.ID) != 8 {
				t.Fatalf("request ID %q is not 8 hex chars", req.ID)
			}
			rt, ok := catalog.Get(req.RoomTypeID)
			if !ok {
				t.Fatalf("request names unknown room type %q", req.RoomTypeID)
			}
			offset := int(req.CheckIn.Sub(today).Hours() / 24)
			if offset < profile.CheckInMinOffset || offset > profile.CheckInMaxOffset {
				t.Fatalf("check-in offset %d outside [%d, %d]",
					offset, profile.CheckInMinOffset, profile.CheckInMaxOffset)
			}
			nights := req.Nights()
			if nights < 1 || nights > len(profile.StayWeights) {
				t.Fatalf("stay of %d nights outside [1, %d]", nights, len(profile.StayWeights))
			}
			if req.PartySize < 1 || req.PartySize > rt.Capacity {
				t.Fatalf("party of %d outside [1, %d] for %s",
					req.PartySize, rt.Capacity, rt.ID)
			}
			if req.MaxBudget <= 0 {
				t.Fatalf("non-positive budget %d", req.MaxBudget)
			}
			if !req.RequestedAt.Equal(today) {
				t.Fatalf("RequestedAt = %v, want %v", req.RequestedAt, today)
			}
		}
	}
}

func TestNextDayRequestsCountBand(t *testing.T) {
	g := testDemandGenerator(t, nil)
	profile := testProfile()

	check := func(day time.Time, seasonFactor float64) {
		scaled := float64(profile.RequestsPerDay) * seasonFactor
		lo := int(math.Floor(scaled * 0.7))
		hi := int(math.Ceil(scaled * 1.3))
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 50; i++ {
			n := len(g.NextDayRequests(day, rng))
			if n < lo || n > hi {
				t.Fatalf("count %d on %s outside [%d, %d]",
					n, day.Format("2006-01-02"), lo, hi)
			}
		}
	}

	check(date(t, "2026-07-01"), 1.5) // high season
	check(date(t, "2026-05-01"), 1.0) // medium
	check(date(t, "2026-02-01"), 0.7) // low
}

// fixedFactor is a stand-in external demand influence.
type fixedFactor float64

func (f fixedFactor) DemandFactor(time.Time) float64 { return float64(f) }

func TestNextDayRequestsWeatherScaling(t *testing.T) {
	g := testDemandGenerator(t, fixedFactor(2.0))
	profile := testProfile()

	// Medium season, factor 2.0: the band doubles.
	scaled := float64(profile.RequestsPerDay) * 2.0
	lo := int(math.Floor(scaled * 0.7))
	hi := int(math.Ceil(scaled * 1.3))

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		n := len(g.NextDayRequests(date(t, "2026-05-01"), rng))
		if n < lo || n > hi {
			t.Fatalf("count %d outside doubled band [%d, %d]", n, lo, hi)
		}
	}
}

func TestDemandProfileValidate(t *testing.T) {
	mutate := func(fn func(*DemandProfile)) DemandProfile {
		p := testProfile()
		fn(&p)
		return p
	}

	cases := []struct {
		name    string
		profile DemandProfile
	}{
		{"zero requests per day", mutate(func(p *DemandProfile) { p.RequestsPerDay = 0 })},
		{"min offset below 1", mutate(func(p *DemandProfile) { p.CheckInMinOffset = 0 })},
		{"max offset below min", mutate(func(p *DemandProfile) { p.CheckInMaxOffset = 0 })},
		{"no stay weights", mutate(func(p *DemandProfile) { p.StayWeights = nil })},
		{"negative stay weight", mutate(func(p *DemandProfile) { p.StayWeights = []int{10, -1} })},
		{"zero-sum party weights", mutate(func(p *DemandProfile) { p.PartyWeights = []int{0, 0} })},
		{"inverted budget band", mutate(func(p *DemandProfile) { p.BudgetBandMax = 0.5 })},
	}
	for _, c := range cases {
		if err := c.profile.Validate(); err == nil {
			t.Fatalf("Validate accepted profile with %s", c.name)
		}
	}
	if err := testProfile().Validate(); err != nil {
		t.Fatalf("Validate rejected a well-formed profile: %v", err)
	}
}
