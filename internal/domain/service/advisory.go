package service

import (
	"context"

	"AgriPulse/internal/domain/models"
)

// WeatherProvider resolves the current weather and a daily rainfall forecast.
// Implementations may fail; callers decide whether to degrade or propagate.
type WeatherProvider interface {
	Forecast(ctx context.Context) (models.WeatherSnapshot, error)
}

// PriceProvider returns a crop's historical daily prices, ascending by date.
type PriceProvider interface {
	HistoricalPrices(ctx context.Context, crop string) ([]models.PricePoint, error)
}

// PestClassifier is the opaque image classifier boundary: photo in,
// label and confidence out. Its internals are not this service's concern.
type PestClassifier interface {
	Classify(ctx context.Context, image []byte) (models.PestDiagnosis, error)
}
