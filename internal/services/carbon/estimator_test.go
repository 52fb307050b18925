package carbon

import (
	"testing"

	"AgriPulse/internal/domain/models"
)

func TestFootprintBreakdown(t *testing.T) {
	e := NewEstimator(Tunables{})
	fp := e.Footprint(models.CarbonInputs{
		FertilizerUreaKg: 10, // 15
		FertilizerDAPKg:  10, // 13
		TractorHours:     5,  // 13
		PumpHours:        10, // 12
		FuelLiters:       10, // 23.1
		ElectricityKWh:   10, // 8.2
	})
	if fp.Fertilizer != 28 {
		t.Fatalf("expected fertilizer 28, got %v", fp.Fertilizer)
	}
	if fp.Machinery != 25 {
		t.Fatalf("expected machinery 25, got %v", fp.Machinery)
	}
	if fp.Other != 31.3 {
		t.Fatalf("expected other 31.3, got %v", fp.Other)
	}
	if fp.Total != 84.3 {
		t.Fatalf("expected total 84.3, got %v", fp.Total)
	}
	if fp.Level != LevelLow {
		t.Fatalf("expected level low, got %q", fp.Level)
	}
	if len(fp.Tips) == 0 {
		t.Fatal("expected tips for level")
	}
}

func TestFootprintLevels(t *testing.T) {
	e := NewEstimator(Tunables{})
	tests := []struct {
		urea  float64
		level string
	}{
		{100, LevelLow},    // 150, boundary inclusive
		{150, LevelMedium}, // 225
		{200, LevelMedium}, // 300, boundary inclusive
		{250, LevelHigh},   // 375
	}
	for _, tc := range tests {
		fp := e.Footprint(models.CarbonInputs{FertilizerUreaKg: tc.urea})
		if fp.Level != tc.level {
			t.Errorf("urea %v kg: expected level %q, got %q (total %v)", tc.urea, tc.level, fp.Level, fp.Total)
		}
	}
}

func TestPerHectare(t *testing.T) {
	e := NewEstimator(Tunables{})
	in := models.CarbonInputs{FertilizerUreaKg: 100, FarmAreaHa: 2}
	fp, ok := e.PerHectare(in)
	if !ok {
		t.Fatal("expected per-hectare figures")
	}
	if fp.Total != 75 {
		t.Fatalf("expected 75 per hectare, got %v", fp.Total)
	}
	if _, ok := e.PerHectare(models.CarbonInputs{FertilizerUreaKg: 100}); ok {
		t.Fatal("expected no per-hectare figures without farm area")
	}
}

func TestCompareToBenchmark(t *testing.T) {
	e := NewEstimator(Tunables{})
	// 1150 vs wheat benchmark 1200 is -4.2%, inside the ±10% band.
	if c := e.CompareToBenchmark(1150, "wheat"); c.Comparison != "average" {
		t.Fatalf("1150 vs wheat benchmark 1200 should be average, got %+v", c)
	}
	// 1000 vs 1200 is -16.7%, past the band.
	if c := e.CompareToBenchmark(1000, "wheat"); c.Comparison != "better" {
		t.Fatalf("1000 vs 1200 should be better, got %+v", c)
	}
	if c := e.CompareToBenchmark(5000, "tomato"); c.Comparison != "worse" {
		t.Fatalf("5000 vs 2500 should be worse, got %+v", c)
	}
	if c := e.CompareToBenchmark(2000, "durian"); c.Benchmark != 2000 || c.Comparison != "average" {
		t.Fatalf("unknown crop should use default benchmark, got %+v", c)
	}
}

func TestCompareToBenchmarkHonorsBand(t *testing.T) {
	e := NewEstimator(Tunables{BenchmarkBandPct: 20})
	// -16.7% sits inside a widened ±20% band.
	if c := e.CompareToBenchmark(1000, "wheat"); c.Comparison != "average" {
		t.Fatalf("1000 vs 1200 with ±20%% band should be average, got %+v", c)
	}
}
