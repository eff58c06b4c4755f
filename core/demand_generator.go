// core/demand_generator.go
package core

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/signalsfoundry/lodging-simulator/model"
)

// DemandFactorProvider scales daily demand by an external influence such as
// weather. Implementations must be pure functions of the date: they are
// consulted outside the demand RNG stream, so they must not draw from it.
type DemandFactorProvider interface {
	DemandFactor(date time.Time) float64
}

// DemandProfile holds every tunable of request generation.
type DemandProfile struct {
	// RequestsPerDay is the medium-season baseline request count.
	RequestsPerDay int
	// SeasonDemand scales the request count per season label.
	SeasonDemand map[model.SeasonLabel]float64
	// SeasonBudget scales guest budgets per season label.
	SeasonBudget map[model.SeasonLabel]float64
	// CheckInMinOffset/CheckInMaxOffset bound how many days ahead of
	// "today" a check-in may fall (inclusive).
	CheckInMinOffset int
	CheckInMaxOffset int
	// StayWeights weight stay lengths: index i is the relative weight
	// of a stay of i+1 nights. The slice length is the maximum stay.
	StayWeights []int
	// PartyWeights weight party sizes the same way, truncated to the
	// sampled room type's capacity before drawing.
	PartyWeights []int
	// BudgetBandMin/BudgetBandMax bound the uniform multiplier applied
	// to the room type's base rate when deriving the nightly budget.
	BudgetBandMin float64
	BudgetBandMax float64
}

// Validate checks the profile's structural invariants at load time.
func (p DemandProfile) Validate() error {
	if p.RequestsPerDay <= 0 {
		return fmt.Errorf("demand: requests_per_day must be positive, got %d", p.RequestsPerDay)
	}
	if p.CheckInMinOffset < 1 {
		return fmt.Errorf("demand: check-in min offset must be at least 1, got %d", p.CheckInMinOffset)
	}
	if p.CheckInMaxOffset < p.CheckInMinOffset {
		return fmt.Errorf("demand: check-in max offset %d below min offset %d",
			p.CheckInMaxOffset, p.CheckInMinOffset)
	}
	if len(p.StayWeights) == 0 {
		return fmt.Errorf("demand: no stay weights configured")
	}
	if err := validateWeights("stay", p.StayWeights); err != nil {
		return err
	}
	if len(p.PartyWeights) == 0 {
		return fmt.Errorf("demand: no party weights configured")
	}
	if err := validateWeights("party", p.PartyWeights); err != nil {
		return err
	}
	if p.BudgetBandMin <= 0 || p.BudgetBandMax < p.BudgetBandMin {
		return fmt.Errorf("demand: budget band [%v, %v] is invalid", p.BudgetBandMin, p.BudgetBandMax)
	}
	return nil
}

func validateWeights(name string, weights []int) error {
	sum := 0
	for i, w := range weights {
		if w < 0 {
			return fmt.Errorf("demand: negative %s weight at index %d", name, i)
		}
		sum += w
	}
	if sum == 0 {
		return fmt.Errorf("demand: %s weights sum to zero", name)
	}
	return nil
}

// DemandGenerator produces each simulated day's request stream. All
// randomness comes from the *rand.Rand threaded through NextDayRequests;
// there is no ambient randomness anywhere, so a fixed seed reproduces an
// identical stream. That reproducibility is what makes pricing-policy
// comparisons and the engine's determinism tests possible.
type DemandGenerator struct {
	catalog *model.Catalog
	seasons *SeasonCalendar
	profile DemandProfile
	weather DemandFactorProvider // optional
}

// NewDemandGenerator builds a generator from a validated profile. The
// weather provider may be nil.
func NewDemandGenerator(catalog *model.Catalog, seasons *SeasonCalendar, profile DemandProfile, weather DemandFactorProvider) (*DemandGenerator, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("demand: empty room-type catalog")
	}
	return &DemandGenerator{
		catalog: catalog,
		seasons: seasons,
		profile: profile,
		weather: weather,
	}, nil
}

// MaxStayNights returns the longest stay the generator can produce.
func (g *DemandGenerator) MaxStayNights() int { return len(g.profile.StayWeights) }

// MaxCheckInOffset returns the furthest check-in offset the generator can
// produce.
func (g *DemandGenerator) MaxCheckInOffset() int { return g.profile.CheckInMaxOffset }

// NextDayRequests generates the day's requests in a deterministic order.
// The count is drawn from a ±30% band around the season- and
// weather-scaled baseline.
func (g *DemandGenerator) NextDayRequests(date time.Time, rng *rand.Rand) []model.DemandRequest {
	today := DateOnly(date)
	season := g.seasons.SeasonFor(today)

	factor := 1.0
	if g.weather != nil {
		factor = g.weather.DemandFactor(today)
	}

	scaled := float64(g.profile.RequestsPerDay) * g.seasonFactor(g.profile.SeasonDemand, season) * factor
	lo := int(math.Floor(scaled * 0.7))
	hi := int(math.Ceil(scaled * 1.3))
	if hi < lo {
		hi = lo
	}
	count := lo + rng.Intn(hi-lo+1)

	requests := make([]model.DemandRequest, 0, count)
	for i := 0; i < count; i++ {
		requests = append(requests, g.generateRequest(today, season, factor, rng))
	}
	return requests
}

func (g *DemandGenerator) generateRequest(today time.Time, season model.SeasonLabel, weatherFactor float64, rng *rand.Rand) model.DemandRequest {
	roomType := g.catalog.At(rng.Intn(g.catalog.Len()))

	offset := g.profile.CheckInMinOffset +
		rng.Intn(g.profile.CheckInMaxOffset-g.profile.CheckInMinOffset+1)
	nights := 1 + weightedChoice(rng, g.profile.StayWeights)

	// Party size is weighted like stay length but can never exceed the
	// sampled room type's capacity; the admission controller does not
	// second-guess this.
	partyWeights := g.profile.PartyWeights
	if roomType.Capacity < len(partyWeights) {
		partyWeights = partyWeights[:roomType.Capacity]
	}
	party := 1
	if weightSum(partyWeights) > 0 {
		party = 1 + weightedChoice(rng, partyWeights)
	}

	band := g.profile.BudgetBandMin +
		rng.Float64()*(g.profile.BudgetBandMax-g.profile.BudgetBandMin)
	budget := float64(roomType.BaseRate) * band *
		g.seasonFactor(g.profile.SeasonBudget, season) * weatherFactor

	checkIn := today.AddDate(0, 0, offset)
	return model.DemandRequest{
		ID:          shortID(rng),
		RoomTypeID:  roomType.ID,
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, nights),
		PartySize:   party,
		MaxBudget:   roundHalfUp(budget),
		RequestedAt: today,
	}
}

func (g *DemandGenerator) seasonFactor(table map[model.SeasonLabel]float64, season model.SeasonLabel) float64 {
	if f, ok := table[season]; ok {
		return f
	}
	return 1.0
}

func weightSum(weights []int) int {
	sum := 0
	for _, w := range weights {
		sum += w
	}
	return sum
}

// weightedChoice draws an index proportionally to the given weights. The
// caller guarantees a strictly positive weight sum.
func weightedChoice(rng *rand.Rand, weights []int) int {
	n := rng.Intn(weightSum(weights))
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}

// shortID draws an 8-hex-char identifier from the request stream's RNG so
// IDs are reproducible under a fixed seed.
func shortID(rng *rand.Rand) string {
	var b [4]byte
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	return hex.EncodeToString(b[:])
}
