package mandi

import (
	"context"
	"errors"
	"fmt"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/domain/repository"
	"AgriPulse/pkg/logger"
)

// ErrNoData means every configured price source failed or was empty.
var ErrNoData = errors.New("mandi: no price data available")

// DataSource is one way of obtaining a crop's price history. Sources are
// ordered by preference and tried in sequence.
type DataSource interface {
	Name() string
	Prices(ctx context.Context, crop string) ([]models.PricePoint, error)
}

// Provider resolves price history through an ordered fallback chain:
// live mandi API, the local price store, bundled sample data. Prices that
// arrive from the live API are written back to the store so the local
// history keeps growing while the API is reachable.
type Provider struct {
	sources []DataSource
	store   repository.PriceStore
	logger  *logger.Logger
}

func NewProvider(log *logger.Logger, store repository.PriceStore, sources ...DataSource) *Provider {
	return &Provider{sources: sources, store: store, logger: log}
}

// HistoricalPrices returns the first non-empty series a source produces,
// ascending by date.
func (p *Provider) HistoricalPrices(ctx context.Context, crop string) ([]models.PricePoint, error) {
	for i, src := range p.sources {
		points, err := src.Prices(ctx, crop)
		if err != nil {
			p.logger.Warn("price source failed, trying next",
				logger.String("source", src.Name()),
				logger.String("crop", crop),
				logger.Error(err))
			continue
		}
		if len(points) == 0 {
			continue
		}
		// Only persist prices from the primary live source.
		if i == 0 && p.store != nil {
			if serr := p.store.StorePrices(ctx, crop, points); serr != nil {
				p.logger.Warn("persist mandi prices failed",
					logger.String("crop", crop),
					logger.Error(serr))
			}
		}
		return points, nil
	}
	return nil, fmt.Errorf("%w: crop %s", ErrNoData, crop)
}

// StoreSource serves price history out of the local price store.
type StoreSource struct {
	store repository.PriceStore
	limit int
}

func NewStoreSource(store repository.PriceStore, limit int) *StoreSource {
	if limit <= 0 {
		limit = 90
	}
	return &StoreSource{store: store, limit: limit}
}

var _ DataSource = (*StoreSource)(nil)

func (s *StoreSource) Name() string { return "price-store" }

func (s *StoreSource) Prices(ctx context.Context, crop string) ([]models.PricePoint, error) {
	return s.store.DailyPrices(ctx, crop, s.limit)
}
