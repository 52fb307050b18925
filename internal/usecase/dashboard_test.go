package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
)

func newDashboardUC(weather *fakeWeatherProvider, prices *fakePriceProvider, store *fakeStorage, t *testing.T) *DashboardUseCase {
	weatherUC := NewWeatherUseCase(weather, nil, time.Minute, testLogger(t))
	forecastUC := newForecastUC(prices, nil, t)
	irrigationUC := newIrrigationUC(weather, store, t)
	return NewDashboardUseCase(weatherUC, forecastUC, irrigationUC)
}

func TestDashboardAggregatesSections(t *testing.T) {
	weather := &fakeWeatherProvider{snap: models.WeatherSnapshot{
		Temperature: 28,
		Forecast:    dryForecast(7),
	}}
	prices := &fakePriceProvider{points: pricePoints(30)}
	uc := newDashboardUC(weather, prices, &fakeStorage{latest: 45}, t)

	moisture := 45.0
	snap, err := uc.GetDashboard(context.Background(), GetDashboardParams{
		Crop:     "tomato",
		Moisture: &moisture,
	})
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if snap.Weather == nil || snap.Market == nil || snap.Irrigation == nil {
		t.Fatalf("missing sections: %+v", snap)
	}
	if snap.Errors != nil {
		t.Fatalf("unexpected errors: %v", snap.Errors)
	}
}

func TestDashboardDefaultsAndNormalizesCrop(t *testing.T) {
	weather := &fakeWeatherProvider{snap: models.WeatherSnapshot{Forecast: dryForecast(7)}}
	prices := &fakePriceProvider{points: pricePoints(30)}
	uc := newDashboardUC(weather, prices, &fakeStorage{latest: 45}, t)

	moisture := 45.0
	snap, err := uc.GetDashboard(context.Background(), GetDashboardParams{Moisture: &moisture})
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if snap.Crop != "tomato" {
		t.Fatalf("default crop = %q, want tomato", snap.Crop)
	}

	snap, err = uc.GetDashboard(context.Background(), GetDashboardParams{Crop: "dragonfruit", Moisture: &moisture})
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if snap.Crop != "tomato" {
		t.Fatalf("normalized crop = %q, want tomato", snap.Crop)
	}
}

func TestDashboardSectionsFailIndependently(t *testing.T) {
	weather := &fakeWeatherProvider{snap: models.WeatherSnapshot{Forecast: dryForecast(7)}}
	prices := &fakePriceProvider{err: fmt.Errorf("mandi api down")}
	uc := newDashboardUC(weather, prices, &fakeStorage{latest: 45}, t)

	moisture := 45.0
	snap, err := uc.GetDashboard(context.Background(), GetDashboardParams{
		Crop:     "onion",
		Moisture: &moisture,
	})
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if snap.Market != nil {
		t.Fatal("market section should be absent")
	}
	if snap.Weather == nil || snap.Irrigation == nil {
		t.Fatalf("surviving sections missing: %+v", snap)
	}
	if _, ok := snap.Errors["market"]; !ok {
		t.Fatalf("errors = %v, want market entry", snap.Errors)
	}
}

func TestDashboardFailsWhenAllSectionsFail(t *testing.T) {
	weather := &fakeWeatherProvider{err: fmt.Errorf("weather down")}
	prices := &fakePriceProvider{err: fmt.Errorf("mandi down")}
	uc := newDashboardUC(weather, prices, &fakeStorage{err: fmt.Errorf("store down")}, t)

	if _, err := uc.GetDashboard(context.Background(), GetDashboardParams{Crop: "rice", Field: "field-a"}); err == nil {
		t.Fatal("expected error when every section fails")
	}
}
