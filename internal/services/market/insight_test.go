package market

import (
	"strings"
	"testing"

	"AgriPulse/internal/domain/models"
)

func forecastSeries(preds ...float64) []models.ForecastPoint {
	out := make([]models.ForecastPoint, 0, len(preds))
	for i, p := range preds {
		out = append(out, models.ForecastPoint{Date: dayString(i + 10), Predicted: p})
	}
	return out
}

func TestAnalyzeBullish(t *testing.T) {
	e := NewInsightEngine(InsightTunables{})
	hist := histSeries(100, 100, 100, 100, 100, 100, 100)
	fc := forecastSeries(100, 104, 108, 112)

	got := e.Analyze(hist, fc)
	if got.Trend != models.TrendBullish {
		t.Fatalf("expected bullish, got %s", got.Trend)
	}
	if !strings.Contains(got.Recommendation, "Best selling window") {
		t.Fatalf("bullish recommendation must name selling window: %q", got.Recommendation)
	}
	// constant history: relative volatility 0, so confidence hits the ceiling
	if got.Confidence != 0.95 {
		t.Fatalf("expected ceiling confidence 0.95, got %v", got.Confidence)
	}
}

func TestAnalyzeBearish(t *testing.T) {
	e := NewInsightEngine(InsightTunables{})
	hist := histSeries(100, 101, 99, 100, 102, 98, 100)
	fc := forecastSeries(100, 95, 92, 90)

	got := e.Analyze(hist, fc)
	if got.Trend != models.TrendBearish {
		t.Fatalf("expected bearish, got %s", got.Trend)
	}
	if got.Confidence > 0.9 {
		t.Fatalf("bearish confidence above ceiling: %v", got.Confidence)
	}
}

func TestAnalyzeStable(t *testing.T) {
	e := NewInsightEngine(InsightTunables{})
	hist := histSeries(100, 100, 100, 100)
	fc := forecastSeries(100, 101, 100, 102)

	got := e.Analyze(hist, fc)
	if got.Trend != models.TrendStable {
		t.Fatalf("expected stable, got %s", got.Trend)
	}
	if !strings.Contains(got.Recommendation, "Normal selling schedule") {
		t.Fatalf("unexpected recommendation: %q", got.Recommendation)
	}
}

func TestVolatilityBuckets(t *testing.T) {
	e := NewInsightEngine(InsightTunables{})
	fc := forecastSeries(100, 100)

	flat := e.Analyze(histSeries(100, 100, 100, 100), fc)
	if flat.Volatility != models.VolatilityLow {
		t.Fatalf("expected low volatility, got %s", flat.Volatility)
	}

	wild := e.Analyze(histSeries(100, 160, 40, 170, 30, 150), fc)
	if wild.Volatility != models.VolatilityHigh {
		t.Fatalf("expected high volatility, got %s", wild.Volatility)
	}
}

func TestConfidenceClamped(t *testing.T) {
	e := NewInsightEngine(InsightTunables{})
	// extreme relative volatility drives the raw formula below zero
	hist := histSeries(1, 500, 1, 500, 1, 500, 1, 500)
	got := e.Analyze(hist, forecastSeries(100, 120))
	if got.Confidence < 0 || got.Confidence > 1 {
		t.Fatalf("confidence out of [0,1]: %v", got.Confidence)
	}
}

func TestStatsScenarioSMACrossover(t *testing.T) {
	hist := histSeries(10, 10, 10, 10, 10, 10, 10, 20)
	fc := forecastSeries(12, 15, 13)

	stats := Stats(hist, fc)
	if stats == nil {
		t.Fatalf("expected stats")
	}
	if stats.SMA7 != 11.43 {
		t.Fatalf("expected sma7 11.43, got %v", stats.SMA7)
	}
	if stats.SMA14 != 11.25 {
		t.Fatalf("expected sma14 11.25, got %v", stats.SMA14)
	}
	if stats.MarketSignal != models.SignalBuy {
		t.Fatalf("expected BUY, got %s", stats.MarketSignal)
	}
	if stats.BestSellingDay.Price != 15 {
		t.Fatalf("expected best day price 15, got %v", stats.BestSellingDay.Price)
	}
}
