package usecase

import (
	"context"
	"fmt"

	"AgriPulse/pkg/logger"
	"AgriPulse/pkg/queue"
)

// ForecastWarmPayload names the crop whose forecast cache should be
// refreshed.
type ForecastWarmPayload struct {
	Crop string `json:"crop"`
}

// ForecastWarmJob recomputes a crop's market forecast off the request path
// so farmers rarely hit a cold cache.
type ForecastWarmJob struct {
	forecast *ForecastUseCase
	logger   *logger.Logger
}

func NewForecastWarmJob(forecast *ForecastUseCase, l *logger.Logger) *ForecastWarmJob {
	return &ForecastWarmJob{forecast: forecast, logger: l}
}

var _ queue.Job = (*ForecastWarmJob)(nil)

func (j *ForecastWarmJob) Name() string { return "forecast-warm" }

func (j *ForecastWarmJob) Type() string { return "forecast.warm" }

func (j *ForecastWarmJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[ForecastWarmPayload](payload)
	if err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if p.Crop == "" {
		return fmt.Errorf("crop required")
	}
	if _, err := j.forecast.MarketForecast(ctx, p.Crop); err != nil {
		return fmt.Errorf("warm forecast for %s: %w", p.Crop, err)
	}
	j.logger.Debug("forecast warmed", logger.String("crop", p.Crop))
	return nil
}
