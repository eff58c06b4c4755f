// core/scenario_loader.go
package core

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/lodging-simulator/model"
)

// Scenario is the fully validated configuration of one simulation run.
// Everything in it is immutable once loaded; the engine and its components
// only read from it.
type Scenario struct {
	HotelName string

	Catalog       *model.Catalog
	SeasonWindows []model.SeasonWindow
	DefaultSeason model.SeasonLabel

	Pricing     PricingPolicy
	Demand      DemandProfile
	Suggestions SuggestionThresholds

	StartDate time.Time
	Days      int
	Seed      int64

	ExportPath   string
	ExportFormat string

	WeatherEnabled bool
	WeatherImpact  map[string]float64
}

// InventorySpan returns how many days the inventory calendar must cover:
// the horizon plus the furthest date the demand generator can book into.
func (s *Scenario) InventorySpan() int {
	return s.Days + s.Demand.CheckInMaxOffset + len(s.Demand.StayWeights)
}

// internal YAML shapes – kept unexported so the file format can evolve
// without touching the public Scenario type.
type scenarioYAML struct {
	Hotel struct {
		Name      string `yaml:"name"`
		RoomTypes []struct {
			ID       string `yaml:"id"`
			Count    int    `yaml:"count"`
			Capacity int    `yaml:"capacity"`
			BaseRate int    `yaml:"base_rate"`
		} `yaml:"room_types"`
	} `yaml:"hotel"`
	Pricing struct {
		SeasonMultipliers    map[string]float64 `yaml:"season_multipliers"`
		OccupancyThresholds  []float64          `yaml:"occupancy_thresholds"`
		OccupancyMultipliers []float64          `yaml:"occupancy_multipliers"`
		LeadTimeTiers        []struct {
			MinDays int     `yaml:"min_days"`
			Factor  float64 `yaml:"factor"`
		} `yaml:"lead_time_tiers"`
		Seasons []struct {
			Label string `yaml:"label"`
			Start string `yaml:"start"`
			End   string `yaml:"end"`
		} `yaml:"seasons"`
		DefaultSeason string `yaml:"default_season"`
	} `yaml:"pricing"`
	Demand struct {
		RequestsPerDay   int                `yaml:"requests_per_day"`
		CheckInMinOffset int                `yaml:"check_in_min_offset"`
		CheckInMaxOffset int                `yaml:"check_in_max_offset"`
		StayWeights      []int              `yaml:"stay_weights"`
		PartyWeights     []int              `yaml:"party_weights"`
		BudgetBandMin    float64            `yaml:"budget_band_min"`
		BudgetBandMax    float64            `yaml:"budget_band_max"`
		SeasonDemand     map[string]float64 `yaml:"season_demand"`
		SeasonBudget     map[string]float64 `yaml:"season_budget"`
	} `yaml:"demand"`
	Simulation struct {
		StartDate string `yaml:"start_date"`
		Days      int    `yaml:"days"`
		Seed      int64  `yaml:"seed"`
	} `yaml:"simulation"`
	Suggestions struct {
		WindowDays    int     `yaml:"window_days"`
		HighOccupancy float64 `yaml:"high_occupancy"`
		LowOccupancy  float64 `yaml:"low_occupancy"`
	} `yaml:"suggestions"`
	Export struct {
		Path   string `yaml:"path"`
		Format string `yaml:"format"`
	} `yaml:"export"`
	Weather struct {
		Enabled       bool               `yaml:"enabled"`
		ImpactFactors map[string]float64 `yaml:"impact_factors"`
	} `yaml:"weather"`
}

// LoadScenarioFile opens and loads a YAML scenario from disk.
func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario %q: %w", path, err)
	}
	defer f.Close()
	return LoadScenario(f)
}

// LoadScenario reads a YAML scenario from r and validates it. Every
// inconsistency it can detect is fatal here, before the simulation starts;
// nothing downstream re-validates configuration.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var raw scenarioYAML
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	if len(raw.Hotel.RoomTypes) == 0 {
		return nil, fmt.Errorf("scenario: no room types configured")
	}
	types := make([]model.RoomType, 0, len(raw.Hotel.RoomTypes))
	seen := make(map[string]bool, len(raw.Hotel.RoomTypes))
	for i, rt := range raw.Hotel.RoomTypes {
		if rt.ID == "" {
			return nil, fmt.Errorf("scenario: room type %d has an empty id", i)
		}
		if seen[rt.ID] {
			return nil, fmt.Errorf("scenario: duplicate room type %q", rt.ID)
		}
		seen[rt.ID] = true
		if rt.Count <= 0 {
			return nil, fmt.Errorf("scenario: room type %q has non-positive count %d", rt.ID, rt.Count)
		}
		if rt.Capacity <= 0 {
			return nil, fmt.Errorf("scenario: room type %q has non-positive capacity %d", rt.ID, rt.Capacity)
		}
		if rt.BaseRate <= 0 {
			return nil, fmt.Errorf("scenario: room type %q has non-positive base rate %d", rt.ID, rt.BaseRate)
		}
		types = append(types, model.RoomType{
			ID:       rt.ID,
			Count:    rt.Count,
			Capacity: rt.Capacity,
			BaseRate: rt.BaseRate,
		})
	}

	windows := make([]model.SeasonWindow, 0, len(raw.Pricing.Seasons))
	for _, w := range raw.Pricing.Seasons {
		windows = append(windows, model.SeasonWindow{
			Label: model.SeasonLabel(w.Label),
			Start: w.Start,
			End:   w.End,
		})
	}

	seasonMultipliers := make(map[model.SeasonLabel]float64, len(raw.Pricing.SeasonMultipliers))
	for label, m := range raw.Pricing.SeasonMultipliers {
		seasonMultipliers[model.SeasonLabel(label)] = m
	}
	tiers := make([]LeadTimeTier, 0, len(raw.Pricing.LeadTimeTiers))
	for _, t := range raw.Pricing.LeadTimeTiers {
		tiers = append(tiers, LeadTimeTier{MinDays: t.MinDays, Factor: t.Factor})
	}

	start, err := time.ParseInLocation("2006-01-02", raw.Simulation.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("scenario: start date %q: %w", raw.Simulation.StartDate, err)
	}
	if raw.Simulation.Days <= 0 {
		return nil, fmt.Errorf("scenario: horizon must be positive, got %d days", raw.Simulation.Days)
	}

	sc := &Scenario{
		HotelName:     raw.Hotel.Name,
		Catalog:       model.NewCatalog(types),
		SeasonWindows: windows,
		DefaultSeason: model.SeasonLabel(raw.Pricing.DefaultSeason),
		Pricing: PricingPolicy{
			SeasonMultipliers:    seasonMultipliers,
			OccupancyThresholds:  raw.Pricing.OccupancyThresholds,
			OccupancyMultipliers: raw.Pricing.OccupancyMultipliers,
			LeadTimeTiers:        tiers,
		},
		Demand: DemandProfile{
			RequestsPerDay:   raw.Demand.RequestsPerDay,
			SeasonDemand:     seasonTable(raw.Demand.SeasonDemand),
			SeasonBudget:     seasonTable(raw.Demand.SeasonBudget),
			CheckInMinOffset: raw.Demand.CheckInMinOffset,
			CheckInMaxOffset: raw.Demand.CheckInMaxOffset,
			StayWeights:      raw.Demand.StayWeights,
			PartyWeights:     raw.Demand.PartyWeights,
			BudgetBandMin:    raw.Demand.BudgetBandMin,
			BudgetBandMax:    raw.Demand.BudgetBandMax,
		},
		Suggestions: SuggestionThresholds{
			WindowDays:    raw.Suggestions.WindowDays,
			HighOccupancy: raw.Suggestions.HighOccupancy,
			LowOccupancy:  raw.Suggestions.LowOccupancy,
		},
		StartDate:      DateOnly(start),
		Days:           raw.Simulation.Days,
		Seed:           raw.Simulation.Seed,
		ExportPath:     raw.Export.Path,
		ExportFormat:   raw.Export.Format,
		WeatherEnabled: raw.Weather.Enabled,
		WeatherImpact:  raw.Weather.ImpactFactors,
	}
	if sc.DefaultSeason == "" {
		sc.DefaultSeason = model.SeasonMedium
	}
	if sc.ExportPath == "" {
		sc.ExportPath = "./data"
	}
	if sc.ExportFormat == "" {
		sc.ExportFormat = "csv"
	}
	if sc.Suggestions.WindowDays == 0 {
		sc.Suggestions = SuggestionThresholds{WindowDays: 30, HighOccupancy: 0.8, LowOccupancy: 0.5}
	}

	// Cross-component validation: every failure below aborts before the
	// run starts.
	if _, err := NewSeasonCalendar(sc.SeasonWindows, sc.DefaultSeason); err != nil {
		return nil, err
	}
	if err := sc.Pricing.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Demand.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Suggestions.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func seasonTable(raw map[string]float64) map[model.SeasonLabel]float64 {
	table := make(map[model.SeasonLabel]float64, len(raw))
	for label, f := range raw {
		table[model.SeasonLabel(label)] = f
	}
	return table
}

// DefaultScenario returns the built-in configuration used when no scenario
// file is supplied: a small three-category property over a 90-day horizon.
func DefaultScenario(start time.Time) *Scenario {
	return &Scenario{
		HotelName: "Le Petit Refuge",
		Catalog: model.NewCatalog([]model.RoomType{
			{ID: "standard", Count: 5, Capacity: 2, BaseRate: 80},
			{ID: "confort", Count: 7, Capacity: 3, BaseRate: 120},
			{ID: "suite", Count: 3, Capacity: 4, BaseRate: 180},
		}),
		SeasonWindows: []model.SeasonWindow{
			{Label: model.SeasonHigh, Start: "06-15", End: "09-15"},
			{Label: model.SeasonHigh, Start: "12-15", End: "01-05"},
			{Label: model.SeasonMedium, Start: "04-01", End: "06-14"},
			{Label: model.SeasonMedium, Start: "09-16", End: "10-31"},
			{Label: model.SeasonLow, Start: "01-06", End: "03-31"},
			{Label: model.SeasonLow, Start: "11-01", End: "12-14"},
		},
		DefaultSeason: model.SeasonMedium,
		Pricing: PricingPolicy{
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
		},
		Demand: DemandProfile{
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
		},
		Suggestions: SuggestionThresholds{
			WindowDays:    30,
			HighOccupancy: 0.8,
			LowOccupancy:  0.5,
		},
		StartDate:      DateOnly(start),
		Days:           90,
		Seed:           42,
		ExportPath:     "./data",
		ExportFormat:   "csv",
		WeatherEnabled: false,
	}
}
