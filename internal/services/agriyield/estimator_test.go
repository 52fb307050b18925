package agriyield

import (
	"testing"

	"AgriPulse/internal/domain/models"
)

func TestEstimatePerUnit(t *testing.T) {
	e := NewEstimator()

	est, err := e.Estimate("tomato", 2, UnitAcre)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.EstimatedTons != 40 {
		t.Fatalf("2 acres of tomato at 20 t/acre: expected 40, got %v", est.EstimatedTons)
	}

	est, err = e.Estimate("wheat", 3, UnitHectare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.EstimatedTons != 22.2 {
		t.Fatalf("3 ha of wheat at 7.4 t/ha: expected 22.2, got %v", est.EstimatedTons)
	}
}

func TestEstimateRejectsBadInput(t *testing.T) {
	e := NewEstimator()
	if _, err := e.Estimate("durian", 2, UnitAcre); err == nil {
		t.Fatal("expected error for unknown crop")
	}
	if _, err := e.Estimate("tomato", 0, UnitAcre); err == nil {
		t.Fatal("expected error for zero area")
	}
	if _, err := e.Estimate("tomato", 2, "bigha"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
}

func TestAnalyticsTrend(t *testing.T) {
	e := NewEstimator()

	history := []models.YieldEstimate{ // newest first
		{Crop: "tomato", EstimatedTons: 60},
		{Crop: "tomato", EstimatedTons: 60},
		{Crop: "tomato", EstimatedTons: 40},
		{Crop: "tomato", EstimatedTons: 40},
	}
	a, ok := e.Analytics(history)
	if !ok {
		t.Fatal("expected analytics")
	}
	if a.Trend != "increasing" {
		t.Fatalf("newer half avg 60 vs older 40: expected increasing, got %q (%v%%)", a.Trend, a.TrendPct)
	}
	if a.TrendPct != 50 {
		t.Fatalf("expected trend 50%%, got %v", a.TrendPct)
	}
	if a.Best.EstimatedTons != 60 || a.Worst.EstimatedTons != 40 {
		t.Fatalf("unexpected best/worst: %v/%v", a.Best.EstimatedTons, a.Worst.EstimatedTons)
	}
	if a.AvgTons != 50 || a.TotalTons != 200 {
		t.Fatalf("unexpected avg/total: %v/%v", a.AvgTons, a.TotalTons)
	}
}

func TestAnalyticsStableAndEmpty(t *testing.T) {
	e := NewEstimator()

	a, ok := e.Analytics([]models.YieldEstimate{
		{EstimatedTons: 102},
		{EstimatedTons: 100},
	})
	if !ok || a.Trend != "stable" {
		t.Fatalf("2%% swing should be stable, got %+v", a)
	}

	if _, ok := e.Analytics(nil); ok {
		t.Fatal("expected no analytics for empty history")
	}
}

func TestTip(t *testing.T) {
	e := NewEstimator()
	tip, err := e.Tip("rice")
	if err != nil || tip == "" {
		t.Fatalf("expected tip for rice, got %q, %v", tip, err)
	}
	if _, err := e.Tip("durian"); err == nil {
		t.Fatal("expected error for unknown crop")
	}
}
