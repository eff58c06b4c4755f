package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/signalsfoundry/lodging-simulator/model"
)

func sampleReservations() []model.Reservation {
	checkIn := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	return []model.Reservation{
		{
			ID: "bk-aaaa1111", RequestID: "aaaa1111", RoomTypeID: "standard",
			CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2),
			PartySize: 2, NightlyPrice: 96, TotalPrice: 192,
			Status: model.StatusConfirmed, CreatedOn: checkIn.AddDate(0, 0, -5),
		},
		{
			ID: "bk-bbbb2222", RequestID: "bbbb2222", RoomTypeID: "suite",
			CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 1),
			PartySize: 4, Status: model.StatusRejected, Reason: model.ReasonOverBudget,
			CreatedOn: checkIn.AddDate(0, 0, -5),
		},
	}
}

func TestExportReservationsCSV(t *testing.T) {
	exp, err := New(t.TempDir(), FormatCSV)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := exp.ExportReservations(sampleReservations(), "reservations")
	if err != nil {
		t.Fatalf("ExportReservations failed: %v", err)
	}
	if filepath.Ext(path) != ".csv" {
		t.Fatalf("CSV export wrote %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if records[0][0] != "reservation_id" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][0] != "bk-aaaa1111" || records[1][8] != "confirmed" {
		t.Fatalf("first row = %v", records[1])
	}
	if records[2][8] != "rejected" || records[2][9] != model.ReasonOverBudget {
		t.Fatalf("second row = %v", records[2])
	}
}

func TestExportReservationsJSON(t *testing.T) {
	exp, err := New(t.TempDir(), FormatJSON)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := exp.ExportReservations(sampleReservations(), "reservations")
	if err != nil {
		t.Fatalf("ExportReservations failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["reservation_id"] != "bk-aaaa1111" {
		t.Fatalf("first row = %v", rows[0])
	}
	if rows[0]["check_in"] != "2026-06-10" {
		t.Fatalf("check_in = %v, want a plain date", rows[0]["check_in"])
	}
	// Empty reasons are omitted on confirmed rows.
	if _, ok := rows[0]["reason"]; ok {
		t.Fatalf("confirmed row carries a reason field")
	}
	if rows[1]["reason"] != model.ReasonOverBudget {
		t.Fatalf("rejected row reason = %v", rows[1]["reason"])
	}
}

func TestExportSummaryIsAlwaysJSON(t *testing.T) {
	// Even a CSV exporter writes the nested summary as JSON.
	exp, err := New(t.TempDir(), FormatCSV)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	summary := model.RunSummary{
		RunID:             "run-1",
		StartDate:         time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Days:              30,
		TotalRequests:     450,
		TotalReservations: 300,
		TotalRejections:   150,
		AcceptanceRate:    300.0 / 450.0,
		TotalRevenue:      52000,
		AverageOccupancy:  0.71,
	}
	path, err := exp.ExportSummary(summary, "summary")
	if err != nil {
		t.Fatalf("ExportSummary failed: %v", err)
	}
	if filepath.Ext(path) != ".json" {
		t.Fatalf("summary written to %q, want .json", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if got["run_id"] != "run-1" || got["days"] != float64(30) {
		t.Fatalf("summary = %v", got)
	}
	if got["start_date"] != "2026-06-01" {
		t.Fatalf("start_date = %v", got["start_date"])
	}
}

func TestExportDayResultsCSV(t *testing.T) {
	exp, err := New(t.TempDir(), FormatCSV)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	days := []model.DayResult{
		{
			Day: 0, Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			Season: model.SeasonMedium, Requests: 12, Accepted: 9, Rejected: 3,
			Revenue: 830,
			Snapshot: model.OccupancySnapshot{
				Committed: 6, Total: 15, AggregateRate: 0.4,
			},
		},
	}
	path, err := exp.ExportDayResults(days, "daily_results")
	if err != nil {
		t.Fatalf("ExportDayResults failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(records))
	}
	row := records[1]
	if row[1] != "2026-06-01" || row[2] != "medium" || row[6] != "830" {
		t.Fatalf("day row = %v", row)
	}
	if row[9] != "0.4000" {
		t.Fatalf("occupancy column = %q, want 0.4000", row[9])
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("csv"); err != nil || f != FormatCSV {
		t.Fatalf("ParseFormat(csv) = %v, %v", f, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("ParseFormat accepted xml")
	}
}
