package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/admin/astro-insights/internal/domain"
)

func TestMoonPhaseAtBoundaries(t *testing.T) {
	tests := []struct {
		angle        float64
		name         domain.MoonPhaseName
		illumination float64
	}{
		{0, domain.NewMoon, 0},
		{45, domain.WaxingCrescent, 25},
		{90, domain.FirstQuarter, 50},
		{135, domain.WaxingGibbous, 75},
		{180, domain.FullMoon, 100},
		{225, domain.WaningGibbous, 75},
		{270, domain.LastQuarter, 50},
		{315, domain.WaningCrescent, 25},
		{360, domain.NewMoon, 0},
		{-45, domain.WaningCrescent, 25},
	}

	for _, tt := range tests {
		got := MoonPhaseAt(tt.angle)
		if got.Name != tt.name {
			t.Errorf("angle %.1f: name = %s, want %s", tt.angle, got.Name, tt.name)
		}
		assertFloat(t, "illumination", got.IlluminationPct, tt.illumination)
	}
}

func TestMoonPhaseAtInterpolates(t *testing.T) {
	tests := []struct {
		angle        float64
		illumination float64
	}{
		{22.5, 12.5},
		{112.5, 62.5},
		{202.5, 87.5},
		{247.5, 62.5},
		{337.5, 12.5},
	}
	for _, tt := range tests {
		assertFloat(t, "illumination", MoonPhaseAt(tt.angle).IlluminationPct, tt.illumination)
	}
}

func TestMoonPhaseOctantsAreExhaustive(t *testing.T) {
	for a := 0.0; a < 360; a += 0.25 {
		got := MoonPhaseAt(a)
		want := domain.MoonPhases[int(math.Floor(a/45))]
		if got.Name != want {
			t.Fatalf("angle %.2f: name = %s, want %s", a, got.Name, want)
		}
		if got.IlluminationPct < 0 || got.IlluminationPct > 100 {
			t.Fatalf("angle %.2f: illumination %.2f out of range", a, got.IlluminationPct)
		}
	}
}

func TestMoonPhaseDaysEstimates(t *testing.T) {
	newMoon := MoonPhaseAt(0)
	if newMoon.DaysToNew != 30 || newMoon.DaysToFull != 15 {
		t.Errorf("new moon: days to new %d, days to full %d", newMoon.DaysToNew, newMoon.DaysToFull)
	}
	full := MoonPhaseAt(180)
	if full.DaysToNew != 15 || full.DaysToFull != 0 {
		t.Errorf("full moon: days to new %d, days to full %d", full.DaysToNew, full.DaysToFull)
	}
	quarter := MoonPhaseAt(270)
	// (360-270)/360*29.5 = 7.375, (180-270+360)/360*29.5 = 22.125
	if quarter.DaysToNew != 7 || quarter.DaysToFull != 22 {
		t.Errorf("last quarter: days to new %d, days to full %d", quarter.DaysToNew, quarter.DaysToFull)
	}
}

func TestCalculateMoonPhase(t *testing.T) {
	// Луна 95°, Солнце 130° → угол 325°
	got, err := CalculateMoonPhase(leoChart())
	if err != nil {
		t.Fatalf("CalculateMoonPhase: %v", err)
	}
	if got.Name != domain.WaningCrescent {
		t.Errorf("name = %s, want waning_crescent", got.Name)
	}
	assertFloat(t, "angle", got.Angle, 325)
	assertFloat(t, "illumination", got.IlluminationPct, 25-10.0/45*25)
}

func TestCalculateMoonPhaseMissingMoon(t *testing.T) {
	chart := domain.NatalChart{Placements: []domain.NatalPlacement{placement(domain.Sun, domain.Leo, 1, 1)}}

	_, err := CalculateMoonPhase(chart)
	var chartErr *domain.ChartDataError
	if !errors.As(err, &chartErr) {
		t.Fatalf("expected ChartDataError, got %v", err)
	}
	if len(chartErr.Missing) != 1 || chartErr.Missing[0] != domain.Moon {
		t.Errorf("missing = %v, want [Moon]", chartErr.Missing)
	}
}
