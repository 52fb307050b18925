package weather

import (
	"context"
	"errors"
	"fmt"

	"AgriPulse/internal/domain/models"
	"AgriPulse/pkg/logger"
)

// ErrUnavailable means every configured source failed. Callers decide
// whether to degrade (single-day irrigation decision) or propagate
// (weekly schedule, dashboard weather card).
var ErrUnavailable = errors.New("weather: no source available")

// DataSource is one way of obtaining a weather snapshot. Sources are
// ordered by preference and tried in sequence.
type DataSource interface {
	Name() string
	Fetch(ctx context.Context) (models.WeatherSnapshot, error)
}

// Provider resolves weather through an ordered fallback chain:
// OpenWeather API, bundled sample file, static defaults.
type Provider struct {
	sources []DataSource
	logger  *logger.Logger
}

func NewProvider(log *logger.Logger, sources ...DataSource) *Provider {
	return &Provider{sources: sources, logger: log}
}

// Forecast returns the first snapshot a source can produce, stamped with
// the source's name so downstream consumers can label degraded data.
func (p *Provider) Forecast(ctx context.Context) (models.WeatherSnapshot, error) {
	for _, src := range p.sources {
		snap, err := src.Fetch(ctx)
		if err != nil {
			p.logger.Warn("weather source failed, trying next",
				logger.String("source", src.Name()),
				logger.Error(err))
			continue
		}
		if len(snap.Forecast) == 0 {
			p.logger.Warn("weather source returned no forecast, trying next",
				logger.String("source", src.Name()))
			continue
		}
		snap.Source = src.Name()
		return snap, nil
	}
	return models.WeatherSnapshot{}, fmt.Errorf("%w: %d sources tried", ErrUnavailable, len(p.sources))
}
