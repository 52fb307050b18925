package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
)

// DashboardUseCase aggregates the landing-screen sections. Sections are
// fetched in parallel and fail independently: a dead weather API must not
// blank the market card.
type DashboardUseCase struct {
	weather    *WeatherUseCase
	forecast   *ForecastUseCase
	irrigation *IrrigationUseCase
	timeout    time.Duration
}

func NewDashboardUseCase(weather *WeatherUseCase, forecast *ForecastUseCase, irrigation *IrrigationUseCase) *DashboardUseCase {
	return &DashboardUseCase{
		weather:    weather,
		forecast:   forecast,
		irrigation: irrigation,
		timeout:    10 * time.Second,
	}
}

type GetDashboardParams struct {
	Crop     string
	Moisture *float64
	Field    string
}

func (uc *DashboardUseCase) GetDashboard(ctx context.Context, p GetDashboardParams) (*models.DashboardSnapshot, error) {
	if p.Crop == "" {
		p.Crop = string(domrepo.DefaultCrop())
	}
	p.Crop = string(domrepo.NormalizeCrop(p.Crop))

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.DashboardSnapshot{
		Crop:      p.Crop,
		Timestamp: time.Now(),
		Errors:    map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.weather.Current(ctx)
		ch <- item{"weather", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.forecast.MarketForecast(ctx, p.Crop)
		ch <- item{"market", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.irrigation.Recommendation(ctx, p.Crop, p.Moisture, p.Field)
		ch <- item{"irrigation", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "weather":
			v := it.val.(models.WeatherSnapshot)
			res.Weather = &v
		case "market":
			res.Market = it.val.(*models.MarketForecast)
		case "irrigation":
			v := it.val.(models.IrrigationDecision)
			res.Irrigation = &v
		}
	}

	if res.Weather == nil && res.Market == nil && res.Irrigation == nil {
		return nil, fmt.Errorf("all dashboard sections failed: %v", res.Errors)
	}
	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
