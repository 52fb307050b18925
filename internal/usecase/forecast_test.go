package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/services/market"
	"AgriPulse/pkg/cache"
	"AgriPulse/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

type fakePriceProvider struct {
	points []models.PricePoint
	err    error
	calls  int
}

func (f *fakePriceProvider) HistoricalPrices(ctx context.Context, crop string) ([]models.PricePoint, error) {
	f.calls++
	return f.points, f.err
}

type fixedRand struct{ v float64 }

func (r fixedRand) Float64() float64 { return r.v }

func pricePoints(n int) []models.PricePoint {
	points := make([]models.PricePoint, n)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		points[i] = models.PricePoint{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Price: 1800 + float64(i)*5,
		}
	}
	return points
}

func newForecastUC(prices *fakePriceProvider, cacheSvc cache.Service, t *testing.T) *ForecastUseCase {
	synth := market.NewSynthesizer(market.SynthTunables{}, fixedRand{0.5})
	insight := market.NewInsightEngine(market.InsightTunables{})
	return NewForecastUseCase(prices, synth, insight, cacheSvc, time.Minute, testLogger(t))
}

func TestMarketForecastComposesPayload(t *testing.T) {
	prices := &fakePriceProvider{points: pricePoints(30)}
	uc := newForecastUC(prices, nil, t)

	out, err := uc.MarketForecast(context.Background(), "tomato")
	if err != nil {
		t.Fatalf("MarketForecast: %v", err)
	}
	if out.Crop != "tomato" {
		t.Fatalf("crop = %q", out.Crop)
	}
	if len(out.Historical) != 30 {
		t.Fatalf("historical len = %d", len(out.Historical))
	}
	if len(out.Forecast) != 14 {
		t.Fatalf("forecast len = %d, want 14", len(out.Forecast))
	}
	if out.Stats == nil || out.Insight == nil {
		t.Fatalf("stats/insight missing: %+v", out)
	}
	if out.Insight.Trend == "" || out.Insight.Recommendation == "" {
		t.Fatalf("insight not populated: %+v", *out.Insight)
	}
	if out.Stats.AveragePrice <= 0 {
		t.Fatalf("stats not populated: %+v", *out.Stats)
	}
}

func TestMarketForecastCachesResult(t *testing.T) {
	prices := &fakePriceProvider{points: pricePoints(30)}
	uc := newForecastUC(prices, cache.NewMemoryCache(), t)

	first, err := uc.MarketForecast(context.Background(), "onion")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := uc.MarketForecast(context.Background(), "onion")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if prices.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", prices.calls)
	}
	if len(second.Forecast) != len(first.Forecast) {
		t.Fatalf("cached payload differs: %d vs %d", len(second.Forecast), len(first.Forecast))
	}
}

func TestMarketForecastRejectsBadInput(t *testing.T) {
	uc := newForecastUC(&fakePriceProvider{}, nil, t)

	if _, err := uc.MarketForecast(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty crop")
	}

	uc = newForecastUC(&fakePriceProvider{err: fmt.Errorf("api down")}, nil, t)
	if _, err := uc.MarketForecast(context.Background(), "tomato"); err == nil {
		t.Fatal("expected error when provider fails")
	}

	uc = newForecastUC(&fakePriceProvider{points: nil}, nil, t)
	if _, err := uc.MarketForecast(context.Background(), "tomato"); err == nil {
		t.Fatal("expected error for empty history")
	}
}

func TestPriceHistoryTrimsToN(t *testing.T) {
	prices := &fakePriceProvider{points: pricePoints(30)}
	uc := newForecastUC(prices, nil, t)

	points, err := uc.PriceHistory(context.Background(), "wheat", 5)
	if err != nil {
		t.Fatalf("PriceHistory: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("len = %d, want 5", len(points))
	}
	// Should be the most recent five, still ascending.
	if points[4].Price != 1800+29*5 {
		t.Fatalf("last price = %v", points[4].Price)
	}
}
