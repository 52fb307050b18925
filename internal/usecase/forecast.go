package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"AgriPulse/internal/domain/models"
	domsvc "AgriPulse/internal/domain/service"
	"AgriPulse/internal/services/market"
	"AgriPulse/pkg/cache"
	"AgriPulse/pkg/logger"
)

// ForecastUseCase assembles the full market forecast payload for a crop:
// historical prices, the synthesized forward series, derived statistics,
// and the insight summary. Results are cached briefly since the forecast
// is recomputed with fresh randomness on every miss.
type ForecastUseCase struct {
	prices  domsvc.PriceProvider
	synth   *market.Synthesizer
	insight *market.InsightEngine
	cache   cache.Service
	ttl     time.Duration
	logger  *logger.Logger
}

func NewForecastUseCase(
	prices domsvc.PriceProvider,
	synth *market.Synthesizer,
	insight *market.InsightEngine,
	cacheSvc cache.Service,
	ttl time.Duration,
	log *logger.Logger,
) *ForecastUseCase {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ForecastUseCase{
		prices:  prices,
		synth:   synth,
		insight: insight,
		cache:   cacheSvc,
		ttl:     ttl,
		logger:  log,
	}
}

// MarketForecast returns the forecast payload for a crop, serving a cached
// copy when one is fresh.
func (uc *ForecastUseCase) MarketForecast(ctx context.Context, crop string) (*models.MarketForecast, error) {
	if crop == "" {
		return nil, fmt.Errorf("crop required")
	}

	key := cache.GenerateKey("forecast", crop)
	if uc.cache != nil {
		var raw string
		if err := uc.cache.Get(ctx, key, &raw); err == nil {
			var cached models.MarketForecast
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return &cached, nil
			}
		}
	}

	historical, err := uc.prices.HistoricalPrices(ctx, crop)
	if err != nil {
		return nil, fmt.Errorf("price history for %s: %w", crop, err)
	}
	if len(historical) == 0 {
		return nil, fmt.Errorf("no price history for %s", crop)
	}

	forecast := uc.synth.Forecast(historical)
	insight := uc.insight.Analyze(historical, forecast)
	out := &models.MarketForecast{
		Crop:        crop,
		GeneratedAt: time.Now(),
		Historical:  historical,
		Forecast:    forecast,
		Stats:       market.Stats(historical, forecast),
		Insight:     &insight,
	}

	if uc.cache != nil {
		if raw, jerr := json.Marshal(out); jerr == nil {
			if cerr := uc.cache.Set(ctx, key, string(raw), uc.ttl); cerr != nil {
				uc.logger.Warn("cache forecast failed",
					logger.String("crop", crop),
					logger.Error(cerr))
			}
		}
	}
	return out, nil
}

// PriceHistory returns the most recent n historical prices for a crop.
func (uc *ForecastUseCase) PriceHistory(ctx context.Context, crop string, n int) ([]models.PricePoint, error) {
	if crop == "" {
		return nil, fmt.Errorf("crop required")
	}
	if n <= 0 {
		n = 30
	}
	points, err := uc.prices.HistoricalPrices(ctx, crop)
	if err != nil {
		return nil, fmt.Errorf("price history for %s: %w", crop, err)
	}
	if len(points) > n {
		points = points[len(points)-n:]
	}
	return points, nil
}
