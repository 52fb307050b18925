package repository

import (
	"context"
	"time"

	"AgriPulse/internal/domain/models"
)

// SensorStream is a live feed of soil moisture readings from the field
// gateway.
type SensorStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.SoilReading, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, r *models.SoilReading) error
	PublishBatch(ctx context.Context, readings []*models.SoilReading) error
	Close() error
}

type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, r *models.SoilReading) error
	StoreBatch(ctx context.Context, readings []*models.SoilReading) error
	Query(ctx context.Context, field string, from, to time.Time, limit int) ([]*models.SoilReading, error)
	LatestMoisture(ctx context.Context, field string) (float64, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// PriceStore provides read/write access to daily mandi prices.
type PriceStore interface {
	StorePrices(ctx context.Context, crop string, points []models.PricePoint) error
	DailyPrices(ctx context.Context, crop string, n int) ([]models.PricePoint, error)
}

type Metrics interface {
	RecordReadingStored(backend, field string)
	RecordError(kind string)
	RecordLastMoisture(field string, pct float64)
	RecordLatency(op string, seconds float64)
}
