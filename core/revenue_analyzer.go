// core/revenue_analyzer.go
package core

import (
	"fmt"
	"time"

	"github.com/signalsfoundry/lodging-simulator/model"
)

// SuggestionThresholds bound the trailing-occupancy bands used by price
// suggestions.
type SuggestionThresholds struct {
	// WindowDays is the trailing window length.
	WindowDays int
	// HighOccupancy is the average rate above which an increase is
	// suggested.
	HighOccupancy float64
	// LowOccupancy is the average rate below which a decrease is
	// suggested.
	LowOccupancy float64
}

// Validate checks threshold consistency at load time.
func (t SuggestionThresholds) Validate() error {
	if t.WindowDays <= 0 {
		return fmt.Errorf("suggestions: window must be positive, got %d days", t.WindowDays)
	}
	if t.LowOccupancy < 0 || t.HighOccupancy > 1 || t.LowOccupancy >= t.HighOccupancy {
		return fmt.Errorf("suggestions: occupancy band [%v, %v] is invalid",
			t.LowOccupancy, t.HighOccupancy)
	}
	return nil
}

// AnalyzeRevenue summarizes revenue and aggregate occupancy over a window
// of days starting at start. Pure read over the inventory calendar.
func AnalyzeRevenue(inv *InventoryCalendar, start time.Time, days int) model.RevenueAnalysis {
	analysis := model.RevenueAnalysis{
		Start:          DateOnly(start),
		Days:           days,
		DailyRevenue:   make([]int, 0, days),
		DailyOccupancy: make([]float64, 0, days),
	}
	occupancySum := 0.0
	for day := 0; day < days; day++ {
		date := analysis.Start.AddDate(0, 0, day)
		revenue := inv.RevenueOn(date)
		occupancy := inv.AggregateOccupancyRate(date)
		analysis.DailyRevenue = append(analysis.DailyRevenue, revenue)
		analysis.DailyOccupancy = append(analysis.DailyOccupancy, occupancy)
		analysis.TotalRevenue += revenue
		occupancySum += occupancy
	}
	if days > 0 {
		analysis.AverageDailyRevenue = float64(analysis.TotalRevenue) / float64(days)
		analysis.AverageOccupancy = occupancySum / float64(days)
	}
	return analysis
}

// SuggestPriceAdjustments derives per-room-type base-rate recommendations
// from a trailing revenue analysis: increase when trailing occupancy runs
// hot, decrease when it runs cold, otherwise leave the rate alone. This is
// a report for the operator; it never feeds back into the running
// simulation.
func SuggestPriceAdjustments(catalog *model.Catalog, analysis model.RevenueAnalysis, thresholds SuggestionThresholds) []model.PriceSuggestion {
	suggestions := make([]model.PriceSuggestion, 0, catalog.Len())
	for _, rt := range catalog.Types() {
		s := model.PriceSuggestion{
			RoomTypeID:      rt.ID,
			CurrentBaseRate: rt.BaseRate,
		}
		switch {
		case analysis.AverageOccupancy > thresholds.HighOccupancy:
			s.Action = model.SuggestIncrease
			s.AdjustmentPct = 15
			s.Reason = "high trailing occupancy"
		case analysis.AverageOccupancy < thresholds.LowOccupancy:
			s.Action = model.SuggestDecrease
			s.AdjustmentPct = -10
			s.Reason = "low trailing occupancy"
		default:
			s.Action = model.SuggestNoChange
			s.Reason = "occupancy within target band"
		}
		s.SuggestedBaseRate = roundHalfUp(float64(rt.BaseRate) * (1 + s.AdjustmentPct/100))
		suggestions = append(suggestions, s)
	}
	return suggestions
}
