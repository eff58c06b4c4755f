package weather

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestConditionForIsDeterministic(t *testing.T) {
	m1 := New(42, nil)
	m2 := New(42, nil)

	for d := 0; d < 365; d++ {
		date := day(2026, time.January, 1).AddDate(0, 0, d)
		if c1, c2 := m1.ConditionFor(date), m2.ConditionFor(date); c1 != c2 {
			t.Fatalf("same seed disagrees on %s: %v vs %v", date.Format("2006-01-02"), c1, c2)
		}
	}
}

func TestConditionForDependsOnSeed(t *testing.T) {
	m1 := New(1, nil)
	m2 := New(2, nil)

	differs := false
	for d := 0; d < 60; d++ {
		date := day(2026, time.June, 1).AddDate(0, 0, d)
		if m1.ConditionFor(date) != m2.ConditionFor(date) {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatalf("two seeds agreed on 60 consecutive days; the seed is not hashed in")
	}
}

func TestSnowOnlyInWinter(t *testing.T) {
	m := New(42, nil)

	// Sweep several years of summer days: none may be snowy.
	for year := 2024; year <= 2028; year++ {
		for d := 0; d < 92; d++ {
			date := day(year, time.June, 1).AddDate(0, 0, d)
			if c := m.ConditionFor(date); c == Snowy {
				t.Fatalf("snow on %s", date.Format("2006-01-02"))
			}
		}
	}

	// Every condition must come from the known set.
	valid := map[Condition]bool{Sunny: true, Cloudy: true, Rainy: true, Snowy: true}
	for d := 0; d < 365; d++ {
		date := day(2026, time.January, 1).AddDate(0, 0, d)
		if c := m.ConditionFor(date); !valid[c] {
			t.Fatalf("unknown condition %q on %s", c, date.Format("2006-01-02"))
		}
	}
}

func TestDemandFactorUsesImpactTable(t *testing.T) {
	m := New(42, map[Condition]float64{Sunny: 2.0})

	// Find one sunny and one non-sunny day; both exist in any realistic
	// sweep of a year.
	var sunnyDay, otherDay time.Time
	for d := 0; d < 365; d++ {
		date := day(2026, time.January, 1).AddDate(0, 0, d)
		if m.ConditionFor(date) == Sunny {
			sunnyDay = date
		} else {
			otherDay = date
		}
		if !sunnyDay.IsZero() && !otherDay.IsZero() {
			break
		}
	}
	if sunnyDay.IsZero() || otherDay.IsZero() {
		t.Fatalf("could not find both a sunny and a non-sunny day in a year")
	}

	if got := m.DemandFactor(sunnyDay); got != 2.0 {
		t.Fatalf("DemandFactor(sunny) = %v, want 2.0", got)
	}
	// Conditions missing from the table are neutral.
	if got := m.DemandFactor(otherDay); got != 1.0 {
		t.Fatalf("DemandFactor(unmapped condition) = %v, want 1.0", got)
	}
}

func TestDefaultImpactFactors(t *testing.T) {
	m := New(7, nil)
	for d := 0; d < 365; d++ {
		date := day(2026, time.January, 1).AddDate(0, 0, d)
		want := DefaultImpactFactors[m.ConditionFor(date)]
		if got := m.DemandFactor(date); got != want {
			t.Fatalf("DemandFactor(%s) = %v, want %v", date.Format("2006-01-02"), got, want)
		}
	}
}

func TestImpactFromStrings(t *testing.T) {
	if got := ImpactFromStrings(nil); got != nil {
		t.Fatalf("ImpactFromStrings(nil) = %v, want nil", got)
	}
	impact := ImpactFromStrings(map[string]float64{"sunny": 1.5, "rainy": 0.6})
	if impact[Sunny] != 1.5 || impact[Rainy] != 0.6 {
		t.Fatalf("ImpactFromStrings = %v", impact)
	}
}
