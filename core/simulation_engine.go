// core/simulation_engine.go
package core

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/lodging-simulator/internal/logging"
	"github.com/signalsfoundry/lodging-simulator/internal/observability"
	"github.com/signalsfoundry/lodging-simulator/model"
	"github.com/signalsfoundry/lodging-simulator/timectrl"
)

const tracerName = "github.com/signalsfoundry/lodging-simulator/core"

// SimulationEngine runs the day-by-day admission loop: for every day in the
// horizon it generates demand, admits requests in arrival order, snapshots
// occupancy and revenue, hands the finished day to listeners, and advances
// the clock. The progression is strictly linear; a rejected request is a
// normal outcome, never a retry.
type SimulationEngine struct {
	scenario  *Scenario
	seasons   *SeasonCalendar
	inventory *InventoryCalendar
	demand    *DemandGenerator
	admission *AdmissionController
	clock     *timectrl.DayController

	log       logging.Logger
	collector *observability.SimCollector

	dayListeners []func(model.DayResult)
	results      []model.DayResult
}

// EngineOption customises engine construction.
type EngineOption func(*engineOptions)

type engineOptions struct {
	log       logging.Logger
	collector *observability.SimCollector
	weather   DemandFactorProvider
}

// WithLogger attaches a structured logger.
func WithLogger(log logging.Logger) EngineOption {
	return func(o *engineOptions) { o.log = log }
}

// WithCollector attaches Prometheus metrics.
func WithCollector(c *observability.SimCollector) EngineOption {
	return func(o *engineOptions) { o.collector = c }
}

// WithDemandFactor attaches an external demand influence such as weather.
func WithDemandFactor(p DemandFactorProvider) EngineOption {
	return func(o *engineOptions) { o.weather = p }
}

// NewSimulationEngine builds all core components from a validated scenario.
// A scenario that fails validation never gets this far; errors here mean
// the scenario bypassed LoadScenario.
func NewSimulationEngine(scenario *Scenario, opts ...EngineOption) (*SimulationEngine, error) {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Noop()
	}

	seasons, err := NewSeasonCalendar(scenario.SeasonWindows, scenario.DefaultSeason)
	if err != nil {
		return nil, err
	}
	pricing, err := NewPricingEngine(seasons, scenario.Pricing)
	if err != nil {
		return nil, err
	}
	demand, err := NewDemandGenerator(scenario.Catalog, seasons, scenario.Demand, o.weather)
	if err != nil {
		return nil, err
	}

	inventory := NewInventoryCalendar(scenario.Catalog, scenario.StartDate, scenario.InventorySpan())
	admission := NewAdmissionController(inventory, pricing, o.log, o.collector)

	return &SimulationEngine{
		scenario:  scenario,
		seasons:   seasons,
		inventory: inventory,
		demand:    demand,
		admission: admission,
		clock:     timectrl.NewDayController(scenario.StartDate),
		log:       o.log,
		collector: o.collector,
	}, nil
}

// RegisterDayListener adds a callback invoked with each finalized day
// result, in registration order, before the clock advances.
func (se *SimulationEngine) RegisterDayListener(fn func(model.DayResult)) {
	se.dayListeners = append(se.dayListeners, fn)
}

// Inventory exposes the run's inventory calendar for read-only analysis
// (revenue reports, suggestions) after or during the run.
func (se *SimulationEngine) Inventory() *InventoryCalendar { return se.inventory }

// Results returns the per-day results accumulated so far.
func (se *SimulationEngine) Results() []model.DayResult { return se.results }

// Run executes the configured horizon and returns the run summary. The
// request stream is drawn from a single rand.Rand seeded from the
// scenario, so two runs of the same scenario produce byte-identical
// reservation sequences.
func (se *SimulationEngine) Run(ctx context.Context) model.RunSummary {
	ctx, log := logging.WithRunLogger(ctx, se.log)
	runID := logging.RunIDFromContext(ctx)

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "simulation.run")
	span.SetAttributes(
		attribute.String("run.id", runID),
		attribute.String("run.start_date", se.scenario.StartDate.Format("2006-01-02")),
		attribute.Int("run.days", se.scenario.Days),
		attribute.Int64("run.seed", se.scenario.Seed),
	)
	defer span.End()

	log.Info(ctx, "simulation starting",
		logging.String("hotel", se.scenario.HotelName),
		logging.Date("start_date", se.scenario.StartDate),
		logging.Int("days", se.scenario.Days),
		logging.Int("rooms", se.scenario.Catalog.TotalRooms()),
	)

	rng := rand.New(rand.NewSource(se.scenario.Seed))
	se.clock.Reset()
	se.results = make([]model.DayResult, 0, se.scenario.Days)

	summary := model.RunSummary{
		RunID:     runID,
		StartDate: se.scenario.StartDate,
		EndDate:   se.scenario.StartDate.AddDate(0, 0, se.scenario.Days-1),
		Days:      se.scenario.Days,
	}
	occupancySum := 0.0

	for day := 0; day < se.scenario.Days; day++ {
		result := se.simulateDay(ctx, tracer, day, rng)
		se.results = append(se.results, result)

		summary.TotalRequests += result.Requests
		summary.TotalReservations += result.Accepted
		summary.TotalRejections += result.Rejected
		summary.TotalRevenue += result.Revenue
		occupancySum += result.Snapshot.AggregateRate

		for _, fn := range se.dayListeners {
			fn(result)
		}

		se.clock.Advance()
	}

	if summary.TotalRequests > 0 {
		summary.AcceptanceRate = float64(summary.TotalReservations) / float64(summary.TotalRequests)
	}
	summary.AverageOccupancy = occupancySum / float64(se.scenario.Days)

	log.Info(ctx, "simulation complete",
		logging.Int("reservations", summary.TotalReservations),
		logging.Int("rejections", summary.TotalRejections),
		logging.Int("revenue", summary.TotalRevenue),
		logging.Float64("avg_occupancy", summary.AverageOccupancy),
	)
	return summary
}

// simulateDay runs one generate → admit-all → snapshot cycle for the
// clock's current date.
func (se *SimulationEngine) simulateDay(ctx context.Context, tracer trace.Tracer, day int, rng *rand.Rand) model.DayResult {
	started := time.Now()
	date := se.clock.Today()
	season := se.seasons.SeasonFor(date)

	ctx, span := tracer.Start(ctx, "simulation.day")
	span.SetAttributes(
		attribute.Int("day.index", day),
		attribute.String("day.date", date.Format("2006-01-02")),
		attribute.String("day.season", string(season)),
	)
	defer span.End()

	requests := se.demand.NextDayRequests(date, rng)
	se.collector.ObserveRequests(string(season), len(requests))

	result := model.DayResult{
		Day:          day,
		Date:         date,
		Season:       season,
		Requests:     len(requests),
		Reservations: make([]model.Reservation, 0, len(requests)),
	}

	// Strict arrival order: an earlier request may take the capacity a
	// later one needed.
	for _, req := range requests {
		res := se.admission.Process(ctx, req, date)
		if res.Status == model.StatusConfirmed {
			result.Accepted++
		} else {
			result.Rejected++
		}
		result.Reservations = append(result.Reservations, res)
	}

	result.Revenue = se.inventory.RevenueOn(date)
	result.Snapshot = se.inventory.Snapshot(date)

	for _, occ := range result.Snapshot.RoomTypes {
		se.collector.SetOccupancy(occ.RoomTypeID, occ.Rate)
	}
	se.collector.SetAggregateOccupancy(result.Snapshot.AggregateRate)
	se.collector.ObserveDayDuration(time.Since(started).Seconds())

	span.SetAttributes(
		attribute.Int("day.requests", result.Requests),
		attribute.Int("day.accepted", result.Accepted),
		attribute.Int("day.revenue", result.Revenue),
	)

	se.log.Debug(ctx, "day simulated",
		logging.Date("date", date),
		logging.String("season", string(season)),
		logging.Int("requests", result.Requests),
		logging.Int("accepted", result.Accepted),
		logging.Int("rejected", result.Rejected),
		logging.Int("revenue", result.Revenue),
	)
	return result
}
