package market

import (
	"math"
	"testing"

	"AgriPulse/internal/domain/models"
)

func TestSMAShortSeriesAveragesAll(t *testing.T) {
	prices := []float64{10, 20, 30}
	got := SMA(prices, 7)
	if got != 20 {
		t.Fatalf("expected mean of all prices, got %v", got)
	}
}

func TestSMATrailingWindow(t *testing.T) {
	prices := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 10}
	got := SMA(prices, 2)
	if got != 5.5 {
		t.Fatalf("expected 5.5, got %v", got)
	}
}

func TestSMAEmpty(t *testing.T) {
	if got := SMA(nil, 7); got != 0 {
		t.Fatalf("expected 0 for empty series, got %v", got)
	}
}

func TestSMASeriesLengthAndWindows(t *testing.T) {
	prices := []float64{2, 4, 6, 8}
	series := SMASeries(prices, 3)
	if len(series) != len(prices) {
		t.Fatalf("expected same-length output, got %d", len(series))
	}
	// entry 0 uses window of 1, entry 3 uses the last 3 values
	if series[0] != 2 {
		t.Fatalf("expected 2 at index 0, got %v", series[0])
	}
	if series[3] != 6 {
		t.Fatalf("expected 6 at index 3, got %v", series[3])
	}
}

func TestRSINeutralForShortSeries(t *testing.T) {
	prices := make([]float64, 14) // needs period+1 points
	for i := range prices {
		prices[i] = float64(i + 1)
	}
	if got := RSI(prices, 14); got != 50 {
		t.Fatalf("expected neutral 50, got %v", got)
	}
}

func TestRSIAllGainsIsHundred(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = float64(i + 1)
	}
	if got := RSI(prices, 14); got != 100 {
		t.Fatalf("expected 100 with no losses, got %v", got)
	}
}

func TestRSIBounds(t *testing.T) {
	prices := []float64{10, 12, 9, 14, 8, 15, 7, 16, 6, 17, 5, 18, 4, 19, 3, 20}
	got := RSI(prices, 14)
	if got < 0 || got > 100 {
		t.Fatalf("RSI out of bounds: %v", got)
	}
}

func TestVolatilityPopulationStdev(t *testing.T) {
	prices := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := Volatility(prices)
	if math.Abs(got-2) > 1e-9 {
		t.Fatalf("expected population stdev 2, got %v", got)
	}
}

func TestPercentChange(t *testing.T) {
	if got := PercentChange(50, 75); got != 50 {
		t.Fatalf("expected 50%%, got %v", got)
	}
	if got := PercentChange(50, 25); got != -50 {
		t.Fatalf("expected -50%%, got %v", got)
	}
}

func TestSignalCrossoverBuy(t *testing.T) {
	// seven 10s then a 20: sma7=11.43 > sma14=11.25
	prices := []float64{10, 10, 10, 10, 10, 10, 10, 20}
	if got := Signal(prices); got != models.SignalBuy {
		t.Fatalf("expected BUY, got %s", got)
	}
}

func TestSignalHoldOnEquality(t *testing.T) {
	prices := []float64{10, 10, 10, 10}
	if got := Signal(prices); got != models.SignalHold {
		t.Fatalf("expected HOLD, got %s", got)
	}
}

func TestSignalSell(t *testing.T) {
	prices := []float64{20, 20, 20, 20, 20, 20, 20, 20, 10, 10, 10, 10, 10, 10, 10}
	if got := Signal(prices); got != models.SignalSell {
		t.Fatalf("expected SELL, got %s", got)
	}
}
