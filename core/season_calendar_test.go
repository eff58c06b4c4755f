package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/lodging-simulator/model"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestSeasonForWrapAroundWindow(t *testing.T) {
	// Winter high season crosses the year boundary.
	sc, err := NewSeasonCalendar([]model.SeasonWindow{
		{Label: model.SeasonHigh, Start: "12-15", End: "01-05"},
	}, model.SeasonMedium)
	if err != nil {
		t.Fatalf("NewSeasonCalendar failed: %v", err)
	}

	cases := []struct {
		day  string
		want model.SeasonLabel
	}{
		{"2026-12-15", model.SeasonHigh},
		{"2026-12-31", model.SeasonHigh},
		{"2026-01-01", model.SeasonHigh},
		{"2026-01-05", model.SeasonHigh},
		{"2026-01-06", model.SeasonMedium},
		{"2026-12-14", model.SeasonMedium},
		{"2026-07-01", model.SeasonMedium},
	}
	for _, c := range cases {
		if got := sc.SeasonFor(date(t, c.day)); got != c.want {
			t.Fatalf("SeasonFor(%s) = %v, want %v", c.day, got, c.want)
		}
	}
}

func TestSeasonForFirstMatchWins(t *testing.T) {
	// Overlapping windows for different labels: declaration order decides.
	sc, err := NewSeasonCalendar([]model.SeasonWindow{
		{Label: model.SeasonHigh, Start: "06-01", End: "06-30"},
		{Label: model.SeasonLow, Start: "06-15", End: "07-15"},
	}, model.SeasonMedium)
	if err != nil {
		t.Fatalf("NewSeasonCalendar failed: %v", err)
	}

	if got := sc.SeasonFor(date(t, "2026-06-20")); got != model.SeasonHigh {
		t.Fatalf("SeasonFor(06-20) = %v, want high (first declared window)", got)
	}
	if got := sc.SeasonFor(date(t, "2026-07-10")); got != model.SeasonLow {
		t.Fatalf("SeasonFor(07-10) = %v, want low", got)
	}
}

func TestSeasonForDefaultLabel(t *testing.T) {
	sc, err := NewSeasonCalendar(nil, model.SeasonLow)
	if err != nil {
		t.Fatalf("NewSeasonCalendar failed: %v", err)
	}
	if got := sc.SeasonFor(date(t, "2026-08-01")); got != model.SeasonLow {
		t.Fatalf("SeasonFor with no windows = %v, want the default label low", got)
	}

	// An empty default falls back to medium.
	sc, err = NewSeasonCalendar(nil, "")
	if err != nil {
		t.Fatalf("NewSeasonCalendar failed: %v", err)
	}
	if got := sc.DefaultLabel(); got != model.SeasonMedium {
		t.Fatalf("DefaultLabel() = %v, want medium", got)
	}
}

func TestNewSeasonCalendarRejectsMalformedWindows(t *testing.T) {
	cases := []struct {
		name   string
		window model.SeasonWindow
	}{
		{"empty label", model.SeasonWindow{Label: "", Start: "06-01", End: "06-30"}},
		{"unpadded month", model.SeasonWindow{Label: model.SeasonHigh, Start: "6-01", End: "06-30"}},
		{"month out of range", model.SeasonWindow{Label: model.SeasonHigh, Start: "13-01", End: "06-30"}},
		{"day out of range", model.SeasonWindow{Label: model.SeasonHigh, Start: "06-01", End: "06-32"}},
		{"not a date at all", model.SeasonWindow{Label: model.SeasonHigh, Start: "xx-yy", End: "06-30"}},
	}
	for _, c := range cases {
		if _, err := NewSeasonCalendar([]model.SeasonWindow{c.window}, model.SeasonMedium); err == nil {
			t.Fatalf("NewSeasonCalendar accepted window with %s", c.name)
		}
	}
}
