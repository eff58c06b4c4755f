// Package export serializes finished simulation results to CSV or JSON
// files for external analysis. It only ever consumes fully-populated,
// immutable records handed over by the engine; nothing here reaches back
// into the simulation.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/signalsfoundry/lodging-simulator/model"
)

// Format selects the on-disk representation.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format string from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("export: unsupported format %q (want csv or json)", s)
	}
}

// Exporter writes result files into a target directory.
type Exporter struct {
	dir    string
	format Format
}

// New creates the target directory if needed and returns an exporter.
func New(dir string, format Format) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create directory %q: %w", dir, err)
	}
	return &Exporter{dir: dir, format: format}, nil
}

// ExportReservations writes every reservation record (confirmed and
// rejected) to <name>.csv or <name>.json.
func (e *Exporter) ExportReservations(reservations []model.Reservation, name string) (string, error) {
	if e.format == FormatJSON {
		return e.writeJSON(name, reservationRows(reservations))
	}
	header := []string{
		"reservation_id", "request_id", "room_type", "check_in", "check_out",
		"party_size", "nightly_price", "total_price", "status", "reason", "created_on",
	}
	rows := make([][]string, 0, len(reservations))
	for _, r := range reservations {
		rows = append(rows, []string{
			r.ID,
			r.RequestID,
			r.RoomTypeID,
			r.CheckIn.Format("2006-01-02"),
			r.CheckOut.Format("2006-01-02"),
			strconv.Itoa(r.PartySize),
			strconv.Itoa(r.NightlyPrice),
			strconv.Itoa(r.TotalPrice),
			string(r.Status),
			r.Reason,
			r.CreatedOn.Format("2006-01-02"),
		})
	}
	return e.writeCSV(name, header, rows)
}

// ExportDayResults writes the per-day occupancy and revenue series.
func (e *Exporter) ExportDayResults(days []model.DayResult, name string) (string, error) {
	if e.format == FormatJSON {
		return e.writeJSON(name, dayRows(days))
	}
	header := []string{
		"day", "date", "season", "requests", "accepted", "rejected",
		"revenue", "rooms_committed", "rooms_total", "occupancy_rate",
	}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			strconv.Itoa(d.Day),
			d.Date.Format("2006-01-02"),
			string(d.Season),
			strconv.Itoa(d.Requests),
			strconv.Itoa(d.Accepted),
			strconv.Itoa(d.Rejected),
			strconv.Itoa(d.Revenue),
			strconv.Itoa(d.Snapshot.Committed),
			strconv.Itoa(d.Snapshot.Total),
			strconv.FormatFloat(d.Snapshot.AggregateRate, 'f', 4, 64),
		})
	}
	return e.writeCSV(name, header, rows)
}

// ExportPriceSuggestions writes the trailing-occupancy recommendations.
func (e *Exporter) ExportPriceSuggestions(suggestions []model.PriceSuggestion, name string) (string, error) {
	if e.format == FormatJSON {
		return e.writeJSON(name, suggestionRows(suggestions))
	}
	header := []string{
		"room_type", "current_base_rate", "action", "adjustment_pct",
		"suggested_base_rate", "reason",
	}
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{
			s.RoomTypeID,
			strconv.Itoa(s.CurrentBaseRate),
			string(s.Action),
			strconv.FormatFloat(s.AdjustmentPct, 'f', 1, 64),
			strconv.Itoa(s.SuggestedBaseRate),
			s.Reason,
		})
	}
	return e.writeCSV(name, header, rows)
}

// ExportSummary writes the run summary. Summaries are always JSON: they are
// a single nested record, not a table.
func (e *Exporter) ExportSummary(summary model.RunSummary, name string) (string, error) {
	return e.writeJSON(name, summaryRow(summary))
}

func (e *Exporter) writeCSV(name string, header []string, rows [][]string) (string, error) {
	path := filepath.Join(e.dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("export: write header to %q: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("export: write rows to %q: %w", path, err)
	}
	return path, nil
}

func (e *Exporter) writeJSON(name string, payload any) (string, error) {
	path := filepath.Join(e.dir, name+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("export: encode %q: %w", path, err)
	}
	return path, nil
}

// JSON row shapes – kept local so the export format is stable even if the
// model types grow fields.

type reservationRow struct {
	ReservationID string `json:"reservation_id"`
	RequestID     string `json:"request_id"`
	RoomType      string `json:"room_type"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	PartySize     int    `json:"party_size"`
	NightlyPrice  int    `json:"nightly_price"`
	TotalPrice    int    `json:"total_price"`
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	CreatedOn     string `json:"created_on"`
}

func reservationRows(reservations []model.Reservation) []reservationRow {
	rows := make([]reservationRow, 0, len(reservations))
	for _, r := range reservations {
		rows = append(rows, reservationRow{
			ReservationID: r.ID,
			RequestID:     r.RequestID,
			RoomType:      r.RoomTypeID,
			CheckIn:       r.CheckIn.Format("2006-01-02"),
			CheckOut:      r.CheckOut.Format("2006-01-02"),
			PartySize:     r.PartySize,
			NightlyPrice:  r.NightlyPrice,
			TotalPrice:    r.TotalPrice,
			Status:        string(r.Status),
			Reason:        r.Reason,
			CreatedOn:     r.CreatedOn.Format("2006-01-02"),
		})
	}
	return rows
}

type dayRow struct {
	Day           int     `json:"day"`
	Date          string  `json:"date"`
	Season        string  `json:"season"`
	Requests      int     `json:"requests"`
	Accepted      int     `json:"accepted"`
	Rejected      int     `json:"rejected"`
	Revenue       int     `json:"revenue"`
	Committed     int     `json:"rooms_committed"`
	Total         int     `json:"rooms_total"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

func dayRows(days []model.DayResult) []dayRow {
	rows := make([]dayRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, dayRow{
			Day:           d.Day,
			Date:          d.Date.Format("2006-01-02"),
			Season:        string(d.Season),
			Requests:      d.Requests,
			Accepted:      d.Accepted,
			Rejected:      d.Rejected,
			Revenue:       d.Revenue,
			Committed:     d.Snapshot.Committed,
			Total:         d.Snapshot.Total,
			OccupancyRate: d.Snapshot.AggregateRate,
		})
	}
	return rows
}

type suggestionRow struct {
	RoomType          string  `json:"room_type"`
	CurrentBaseRate   int     `json:"current_base_rate"`
	Action            string  `json:"action"`
	AdjustmentPct     float64 `json:"adjustment_pct"`
	SuggestedBaseRate int     `json:"suggested_base_rate"`
	Reason            string  `json:"reason"`
}

func suggestionRows(suggestions []model.PriceSuggestion) []suggestionRow {
	rows := make([]suggestionRow, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, suggestionRow{
			RoomType:          s.RoomTypeID,
			CurrentBaseRate:   s.CurrentBaseRate,
			Action:            string(s.Action),
			AdjustmentPct:     s.AdjustmentPct,
			SuggestedBaseRate: s.SuggestedBaseRate,
			Reason:            s.Reason,
		})
	}
	return rows
}

type summaryJSON struct {
	RunID             string  `json:"run_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Days              int     `json:"days"`
	TotalRequests     int     `json:"total_requests"`
	TotalReservations int     `json:"total_reservations"`
	TotalRejections   int     `json:"total_rejections"`
	AcceptanceRate    float64 `json:"acceptance_rate"`
	TotalRevenue      int     `json:"total_revenue"`
	AverageOccupancy  float64 `json:"average_occupancy"`
}

func summaryRow(s model.RunSummary) summaryJSON {
	return summaryJSON{
		RunID:             s.RunID,
		StartDate:         s.StartDate.Format("2006-01-02"),
		EndDate:           s.EndDate.Format("2006-01-02"),
		Days:              s.Days,
		TotalRequests:     s.TotalRequests,
		TotalReservations: s.TotalReservations,
		TotalRejections:   s.TotalRejections,
		AcceptanceRate:    s.AcceptanceRate,
		TotalRevenue:      s.TotalRevenue,
		AverageOccupancy:  s.AverageOccupancy,
	}
}
