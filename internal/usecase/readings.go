package usecase

import (
	"context"
	"fmt"
	"time"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
)

// ReadingsUseCase provides business logic for retrieving stored readings.
type ReadingsUseCase struct {
	store domrepo.Storage
}

func NewReadingsUseCase(store domrepo.Storage) *ReadingsUseCase {
	return &ReadingsUseCase{store: store}
}

type GetReadingsParams struct {
	Field string
	From  time.Time
	To    time.Time
	Limit int
}

type GetReadingsResult struct {
	Field    string
	From     time.Time
	To       time.Time
	Count    int
	Readings []*models.SoilReading
}

func (uc *ReadingsUseCase) GetReadings(ctx context.Context, p GetReadingsParams) (*GetReadingsResult, error) {
	if p.Field == "" {
		return nil, fmt.Errorf("field required")
	}
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = 1000
	}
	if p.Limit > 50000 {
		p.Limit = 50000
	}

	readings, err := uc.store.Query(ctx, p.Field, p.From, p.To, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("get readings: %w", err)
	}

	return &GetReadingsResult{
		Field:    p.Field,
		From:     p.From,
		To:       p.To,
		Count:    len(readings),
		Readings: readings,
	}, nil
}

// LatestMoisture returns the most recent stored moisture for a field.
func (uc *ReadingsUseCase) LatestMoisture(ctx context.Context, field string) (float64, error) {
	if field == "" {
		return 0, fmt.Errorf("field required")
	}
	return uc.store.LatestMoisture(ctx, field)
}
