// Package weather provides a deterministic simulated weather feed and its
// influence on lodging demand. There is no live API call anywhere in a
// simulation run: conditions are derived from a stable hash of the seed and
// the date, so the same seed always yields the same weather — and because
// the hash never touches the demand RNG stream, enabling or disabling
// weather cannot shift request sampling.
package weather

import (
	"hash/fnv"
	"strconv"
	"time"
)

// Condition is a coarse daily weather classification.
type Condition string

const (
	Sunny  Condition = "sunny"
	Cloudy Condition = "cloudy"
	Rainy  Condition = "rainy"
	Snowy  Condition = "snowy"
)

// DefaultImpactFactors maps conditions to demand multipliers: good weather
// lifts demand, bad weather suppresses it.
var DefaultImpactFactors = map[Condition]float64{
	Sunny:  1.2,
	Cloudy: 1.0,
	Rainy:  0.8,
	Snowy:  0.7,
}

// Model simulates per-date weather conditions.
type Model struct {
	seed   int64
	impact map[Condition]float64
}

// New builds a model. A nil impact map falls back to the defaults; unknown
// conditions resolve to a neutral 1.0.
func New(seed int64, impact map[Condition]float64) *Model {
	if impact == nil {
		impact = DefaultImpactFactors
	}
	return &Model{seed: seed, impact: impact}
}

// ConditionFor returns the simulated condition for a date. Winter months
// can produce snow; the rest of the year splits between sun, cloud, and
// rain with a bias toward fair weather in summer.
func (m *Model) ConditionFor(date time.Time) Condition {
	h := fnv.New64a()
	h.Write([]byte(strconv.FormatInt(m.seed, 10)))
	h.Write([]byte(date.UTC().Format("2006-01-02")))
	roll := h.Sum64() % 100

	switch date.UTC().Month() {
	case time.December, time.January, time.February:
		switch {
		case roll < 20:
			return Snowy
		case roll < 55:
			return Cloudy
		case roll < 80:
			return Rainy
		default:
			return Sunny
		}
	case time.June, time.July, time.August:
		switch {
		case roll < 55:
			return Sunny
		case roll < 85:
			return Cloudy
		default:
			return Rainy
		}
	default:
		switch {
		case roll < 35:
			return Sunny
		case roll < 70:
			return Cloudy
		default:
			return Rainy
		}
	}
}

// DemandFactor maps the date's condition through the impact table. It
// satisfies the core engine's DemandFactorProvider interface.
func (m *Model) DemandFactor(date time.Time) float64 {
	if f, ok := m.impact[m.ConditionFor(date)]; ok {
		return f
	}
	return 1.0
}

// ImpactFromStrings converts a string-keyed impact table (as it appears in
// scenario YAML) into the typed form.
func ImpactFromStrings(raw map[string]float64) map[Condition]float64 {
	if len(raw) == 0 {
		return nil
	}
	impact := make(map[Condition]float64, len(raw))
	for k, v := range raw {
		impact[Condition(k)] = v
	}
	return impact
}
