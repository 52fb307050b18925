package usecase

import (
	"context"
	"encoding/json"
	"time"

	"AgriPulse/internal/domain/models"
	domsvc "AgriPulse/internal/domain/service"
	"AgriPulse/pkg/cache"
	"AgriPulse/pkg/logger"
)

// WeatherUseCase resolves the current weather snapshot with a short cache
// in front of the fallback chain.
type WeatherUseCase struct {
	provider domsvc.WeatherProvider
	cache    cache.Service
	ttl      time.Duration
	logger   *logger.Logger
}

func NewWeatherUseCase(provider domsvc.WeatherProvider, cacheSvc cache.Service, ttl time.Duration, log *logger.Logger) *WeatherUseCase {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &WeatherUseCase{provider: provider, cache: cacheSvc, ttl: ttl, logger: log}
}

const weatherCacheKey = "weather:current"

// Current returns the resolved weather snapshot.
func (uc *WeatherUseCase) Current(ctx context.Context) (models.WeatherSnapshot, error) {
	if uc.cache != nil {
		var raw string
		if err := uc.cache.Get(ctx, weatherCacheKey, &raw); err == nil {
			var cached models.WeatherSnapshot
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return cached, nil
			}
		}
	}

	snap, err := uc.provider.Forecast(ctx)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	if uc.cache != nil {
		if raw, jerr := json.Marshal(snap); jerr == nil {
			if cerr := uc.cache.Set(ctx, weatherCacheKey, string(raw), uc.ttl); cerr != nil {
				uc.logger.Warn("cache weather failed", logger.Error(cerr))
			}
		}
	}
	return snap, nil
}
