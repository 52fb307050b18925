package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
	"AgriPulse/pkg/cache"
)

type fakeWeatherProvider struct {
	snap  models.WeatherSnapshot
	err   error
	calls int
}

func (f *fakeWeatherProvider) Forecast(ctx context.Context) (models.WeatherSnapshot, error) {
	f.calls++
	return f.snap, f.err
}

func TestWeatherCurrentCaches(t *testing.T) {
	provider := &fakeWeatherProvider{snap: models.WeatherSnapshot{
		Temperature: 28.5,
		Humidity:    65,
		Source:      "static",
	}}
	uc := NewWeatherUseCase(provider, cache.NewMemoryCache(), time.Minute, testLogger(t))

	first, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
	if second.Temperature != first.Temperature || second.Source != "static" {
		t.Fatalf("cached snapshot differs: %+v", second)
	}
}

func TestWeatherCurrentPropagatesError(t *testing.T) {
	provider := &fakeWeatherProvider{err: fmt.Errorf("all sources down")}
	uc := NewWeatherUseCase(provider, nil, time.Minute, testLogger(t))

	if _, err := uc.Current(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
