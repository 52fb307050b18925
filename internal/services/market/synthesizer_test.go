package market

import (
	"fmt"
	"math/rand"
	"testing"

	"AgriPulse/internal/domain/models"
)

func histSeries(prices ...float64) []models.PricePoint {
	out := make([]models.PricePoint, 0, len(prices))
	day := 1
	for _, p := range prices {
		out = append(out, models.PricePoint{Date: dayString(day), Price: p})
		day++
	}
	return out
}

func dayString(d int) string {
	return fmt.Sprintf("2025-06-%02d", d)
}

func TestForecastHorizonAndDates(t *testing.T) {
	s := NewSynthesizer(SynthTunables{}, rand.New(rand.NewSource(1)))
	hist := histSeries(100, 102, 101, 103, 105, 104, 106, 108)

	fc := s.Forecast(hist)
	if len(fc) != 14 {
		t.Fatalf("expected 14 forecast points, got %d", len(fc))
	}
	if fc[0].Date != "2025-06-09" {
		t.Fatalf("expected first forecast day after last historical date, got %s", fc[0].Date)
	}
	if fc[13].Date != "2025-06-22" {
		t.Fatalf("expected consecutive dates, last was %s", fc[13].Date)
	}
}

func TestForecastSeededDeterminism(t *testing.T) {
	hist := histSeries(50, 52, 51, 55, 54, 58, 57, 60)

	a := NewSynthesizer(SynthTunables{}, rand.New(rand.NewSource(7))).Forecast(hist)
	b := NewSynthesizer(SynthTunables{}, rand.New(rand.NewSource(7))).Forecast(hist)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different output at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestForecastNonNegative(t *testing.T) {
	// steep decline near zero forces the clamp
	hist := histSeries(10, 8, 6, 4, 2, 1, 0.5, 0.2)
	fc := NewSynthesizer(SynthTunables{}, rand.New(rand.NewSource(3))).Forecast(hist)
	for _, p := range fc {
		if p.Predicted < 0 {
			t.Fatalf("predicted price below zero: %v", p.Predicted)
		}
	}
}

func TestForecastEmptyHistory(t *testing.T) {
	if fc := NewSynthesizer(SynthTunables{}, nil).Forecast(nil); fc != nil {
		t.Fatalf("expected nil forecast for empty history, got %d points", len(fc))
	}
}
