package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/services/irrigation"
)

type fakeStorage struct {
	readings []*models.SoilReading
	latest   float64
	err      error
}

func (f *fakeStorage) Init(ctx context.Context) error                         { return nil }
func (f *fakeStorage) Store(ctx context.Context, r *models.SoilReading) error { return nil }
func (f *fakeStorage) StoreBatch(ctx context.Context, rs []*models.SoilReading) error {
	return nil
}
func (f *fakeStorage) Query(ctx context.Context, field string, from, to time.Time, limit int) ([]*models.SoilReading, error) {
	return f.readings, f.err
}
func (f *fakeStorage) LatestMoisture(ctx context.Context, field string) (float64, error) {
	return f.latest, f.err
}
func (f *fakeStorage) Health(ctx context.Context) error { return nil }
func (f *fakeStorage) Close() error                     { return nil }

func dryForecast(days int) []models.ForecastDay {
	out := make([]models.ForecastDay, days)
	for i := range out {
		out[i] = models.ForecastDay{
			Date:       time.Now().AddDate(0, 0, i).Format("2006-01-02"),
			RainfallMm: 0,
		}
	}
	return out
}

func newIrrigationUC(weather *fakeWeatherProvider, store *fakeStorage, t *testing.T) *IrrigationUseCase {
	engine := irrigation.NewEngine(weather, nil, irrigation.Tunables{})
	sim := irrigation.NewSimulator(engine, fixedRand{0.5})
	readings := NewReadingsUseCase(store)
	weatherUC := NewWeatherUseCase(weather, nil, time.Minute, testLogger(t))
	return NewIrrigationUseCase(engine, sim, readings, weatherUC, testLogger(t))
}

func TestRecommendationUsesExplicitMoisture(t *testing.T) {
	weather := &fakeWeatherProvider{snap: models.WeatherSnapshot{Forecast: dryForecast(7)}}
	uc := newIrrigationUC(weather, &fakeStorage{latest: 10}, t)

	moisture := 50.0
	dec, err := uc.Recommendation(context.Background(), "tomato", &moisture, "field-a")
	if err != nil {
		t.Fatalf("Recommendation: %v", err)
	}
	if dec.ShouldIrrigate {
		t.Fatalf("explicit 50%% moisture should not irrigate: %+v", dec)
	}
}

func TestRecommendationResolvesFromStore(t *testing.T) {
	weather := &fakeWeatherProvider{snap: models.WeatherSnapshot{Forecast: dryForecast(7)}}
	uc := newIrrigationUC(weather, &fakeStorage{latest: 12}, t)

	dec, err := uc.Recommendation(context.Background(), "tomato", nil, "field-a")
	if err != nil {
		t.Fatalf("Recommendation: %v", err)
	}
	if !dec.ShouldIrrigate {
		t.Fatalf("stored 12%% moisture should irrigate: %+v", dec)
	}
}

func TestRecommendationRequiresMoistureOrField(t *testing.T) {
	weather := &fakeWeatherProvider{snap: models.WeatherSnapshot{Forecast: dryForecast(7)}}
	uc := newIrrigationUC(weather, &fakeStorage{}, t)

	if _, err := uc.Recommendation(context.Background(), "tomato", nil, ""); err == nil {
		t.Fatal("expected error with no moisture and no field")
	}
}

func TestScheduleWrapsSimulator(t *testing.T) {
	weather := &fakeWeatherProvider{snap: models.WeatherSnapshot{Forecast: dryForecast(7)}}
	uc := newIrrigationUC(weather, &fakeStorage{}, t)

	moisture := 50.0
	sched, err := uc.Schedule(context.Background(), "tomato", &moisture, "")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if sched.Crop != "tomato" {
		t.Fatalf("crop = %q", sched.Crop)
	}
	if len(sched.Days) != 7 {
		t.Fatalf("days = %d, want 7", len(sched.Days))
	}
}

func TestTipsDegradeWithoutWeather(t *testing.T) {
	weather := &fakeWeatherProvider{err: fmt.Errorf("no sources")}
	uc := newIrrigationUC(weather, &fakeStorage{}, t)

	res, err := uc.Tips(context.Background(), "rice")
	if err != nil {
		t.Fatalf("Tips: %v", err)
	}
	if len(res.Tips) == 0 {
		t.Fatal("expected tips")
	}
	if res.IdealNow {
		t.Fatal("ideal window must be false when weather is unavailable")
	}
}
