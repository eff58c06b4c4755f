package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/signalsfoundry/lodging-simulator/core"
	"github.com/signalsfoundry/lodging-simulator/internal/dashboard"
	"github.com/signalsfoundry/lodging-simulator/internal/export"
	"github.com/signalsfoundry/lodging-simulator/internal/logging"
	"github.com/signalsfoundry/lodging-simulator/internal/observability"
	"github.com/signalsfoundry/lodging-simulator/internal/weather"
	"github.com/signalsfoundry/lodging-simulator/model"
)

func main() {
	scenarioPath := flag.String("scenario", "configs/simulation.yaml", "path to the YAML scenario; built-in defaults are used if the file is missing")
	days := flag.Int("days", 0, "override the scenario's horizon length in days")
	seed := flag.Int64("seed", -1, "override the scenario's random seed (>= 0)")
	exportDir := flag.String("export-dir", "", "override the scenario's export directory")
	dashboardAddr := flag.String("dashboard-addr", "", "serve the read-only dashboard on this address after the run (empty = off)")
	flag.Parse()

	// .env is optional; it just feeds LOG_LEVEL / SIM_TRACING_* below.
	_ = godotenv.Load()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	scenario := loadScenario(ctx, log, *scenarioPath)
	applyOverrides(scenario, *days, *seed, *exportDir)

	collector, err := observability.NewSimCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	opts := []core.EngineOption{
		core.WithLogger(log),
		core.WithCollector(collector),
	}
	if scenario.WeatherEnabled {
		opts = append(opts, core.WithDemandFactor(
			weather.New(scenario.Seed, weather.ImpactFromStrings(scenario.WeatherImpact)),
		))
	}

	engine, err := core.NewSimulationEngine(scenario, opts...)
	if err != nil {
		log.Error(ctx, "failed to build simulation engine", logging.String("error", err.Error()))
		os.Exit(1)
	}

	store := dashboard.NewResultStore()
	engine.RegisterDayListener(store.AppendDay)

	summary := engine.Run(ctx)
	store.SetSummary(summary)

	// Trailing-window analysis over the last part of the horizon.
	window := scenario.Suggestions.WindowDays
	if window > scenario.Days {
		window = scenario.Days
	}
	analysisStart := scenario.StartDate.AddDate(0, 0, scenario.Days-window)
	analysis := core.AnalyzeRevenue(engine.Inventory(), analysisStart, window)
	suggestions := core.SuggestPriceAdjustments(scenario.Catalog, analysis, scenario.Suggestions)
	store.SetSuggestions(suggestions)

	if err := exportResults(ctx, log, engine, scenario, summary, suggestions); err != nil {
		log.Error(ctx, "export failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	printSummary(summary)

	if *dashboardAddr != "" {
		srv := dashboard.NewServer(store, collector, log)
		log.Info(ctx, "serving dashboard", logging.String("addr", *dashboardAddr))
		if err := http.ListenAndServe(*dashboardAddr, srv.Router()); err != nil {
			log.Error(ctx, "dashboard server exited", logging.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

// loadScenario loads the YAML scenario, falling back to the built-in
// defaults when the file does not exist. Any other load error is fatal:
// a malformed scenario must never start a run.
func loadScenario(ctx context.Context, log logging.Logger, path string) *core.Scenario {
	scenario, err := core.LoadScenarioFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn(ctx, "scenario file not found; using built-in defaults",
				logging.String("path", path))
			return core.DefaultScenario(time.Now().UTC())
		}
		log.Error(ctx, "failed to load scenario",
			logging.String("path", path),
			logging.String("error", err.Error()),
		)
		os.Exit(1)
	}
	log.Info(ctx, "scenario loaded",
		logging.String("path", path),
		logging.String("hotel", scenario.HotelName),
	)
	return scenario
}

// applyOverrides folds command-line overrides into the scenario.
func applyOverrides(scenario *core.Scenario, days int, seed int64, exportDir string) {
	if days > 0 {
		scenario.Days = days
	}
	if seed >= 0 {
		scenario.Seed = seed
	}
	if exportDir != "" {
		scenario.ExportPath = exportDir
	}
}

// exportResults writes reservations, the per-day series, price
// suggestions, and the run summary into the scenario's export directory.
func exportResults(
	ctx context.Context,
	log logging.Logger,
	engine *core.SimulationEngine,
	scenario *core.Scenario,
	summary model.RunSummary,
	suggestions []model.PriceSuggestion,
) error {
	format, err := export.ParseFormat(scenario.ExportFormat)
	if err != nil {
		return err
	}
	exporter, err := export.New(scenario.ExportPath, format)
	if err != nil {
		return err
	}

	days := engine.Results()
	reservations := make([]model.Reservation, 0, summary.TotalRequests)
	for _, d := range days {
		reservations = append(reservations, d.Reservations...)
	}

	paths := make([]string, 0, 4)
	path, err := exporter.ExportReservations(reservations, "reservations")
	if err != nil {
		return err
	}
	paths = append(paths, path)
	if path, err = exporter.ExportDayResults(days, "daily_results"); err != nil {
		return err
	}
	paths = append(paths, path)
	if path, err = exporter.ExportPriceSuggestions(suggestions, "price_suggestions"); err != nil {
		return err
	}
	paths = append(paths, path)
	if path, err = exporter.ExportSummary(summary, "summary"); err != nil {
		return err
	}
	paths = append(paths, path)

	for _, p := range paths {
		log.Info(ctx, "results exported", logging.String("path", p))
	}
	return nil
}

func printSummary(summary model.RunSummary) {
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal summary: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
