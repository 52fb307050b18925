package irrigation

import (
	"context"
	"errors"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
)

type stubWeather struct {
	snap models.WeatherSnapshot
	err  error
}

func (s stubWeather) Forecast(ctx context.Context) (models.WeatherSnapshot, error) {
	return s.snap, s.err
}

func days(rain ...float64) []models.ForecastDay {
	out := make([]models.ForecastDay, len(rain))
	for i, r := range rain {
		out[i] = models.ForecastDay{Date: time.Now().AddDate(0, 0, i).Format("2006-01-02"), RainfallMm: r}
	}
	return out
}

func newTestEngine(w stubWeather) *Engine {
	return NewEngine(w, nil, Tunables{})
}

func TestRecommendationMoistureAboveThreshold(t *testing.T) {
	e := newTestEngine(stubWeather{})
	d, err := e.Recommendation(context.Background(), "tomato", 45, days(10, 10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ShouldIrrigate {
		t.Fatalf("moisture 45 above tomato threshold 30, expected no irrigation: %+v", d)
	}
	if d.SoilMoistureThreshold != 30 {
		t.Fatalf("expected threshold 30, got %v", d.SoilMoistureThreshold)
	}
}

func TestRecommendationRainPending(t *testing.T) {
	e := newTestEngine(stubWeather{})
	d, err := e.Recommendation(context.Background(), "tomato", 20, days(3, 3, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ShouldIrrigate {
		t.Fatalf("6mm rain over 48h meets tomato offset 5, expected no irrigation: %+v", d)
	}
}

func TestRecommendationLowMoistureLittleRain(t *testing.T) {
	e := newTestEngine(stubWeather{})
	d, err := e.Recommendation(context.Background(), "tomato", 20, days(0, 1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.ShouldIrrigate {
		t.Fatalf("moisture 20 with 1mm rain expected irrigation: %+v", d)
	}
	if d.NextIrrigationDate != "Today" {
		t.Fatalf("irrigating now, expected date Today, got %q", d.NextIrrigationDate)
	}
}

func TestRecommendationThresholdBoundaryInclusive(t *testing.T) {
	e := newTestEngine(stubWeather{})
	d, err := e.Recommendation(context.Background(), "tomato", 30, days(0, 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ShouldIrrigate {
		t.Fatalf("moisture exactly at threshold should not irrigate: %+v", d)
	}
}

func TestRecommendationUnknownCrop(t *testing.T) {
	e := newTestEngine(stubWeather{})
	_, err := e.Recommendation(context.Background(), "durian", 20, days(0, 0, 0))
	var unknownErr *UnknownCropError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownCropError, got %v", err)
	}
	if unknownErr.Crop != "durian" {
		t.Fatalf("expected crop durian in error, got %q", unknownErr.Crop)
	}
}

func TestRecommendationUnknownCropBeatsWeatherFailure(t *testing.T) {
	e := newTestEngine(stubWeather{err: errors.New("api down")})
	_, err := e.Recommendation(context.Background(), "durian", 20, nil)
	var unknownErr *UnknownCropError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("unknown crop must error even without weather, got %v", err)
	}
}

func TestRecommendationWeatherFallback(t *testing.T) {
	e := newTestEngine(stubWeather{err: errors.New("api down")})
	for _, crop := range []string{"tomato", "onion", "potato", "wheat", "rice", "sugarcane"} {
		for _, moisture := range []float64{0, 15, 29.9, 30, 45, 100} {
			d, err := e.Recommendation(context.Background(), crop, moisture, nil)
			if err != nil {
				t.Fatalf("%s/%v: fallback must not error: %v", crop, moisture, err)
			}
			if d.ShouldIrrigate != (moisture < 30) {
				t.Fatalf("%s/%v: fallback should irrigate iff moisture < 30, got %+v", crop, moisture, d)
			}
			if d.SoilMoistureThreshold != 30 {
				t.Fatalf("%s/%v: fallback threshold should be 30, got %v", crop, moisture, d.SoilMoistureThreshold)
			}
			if d.NextIrrigationDate != "Tomorrow" {
				t.Fatalf("%s/%v: fallback date should be Tomorrow, got %q", crop, moisture, d.NextIrrigationDate)
			}
		}
	}
}

func TestRecommendationEmptyForecastFallsBack(t *testing.T) {
	e := newTestEngine(stubWeather{snap: models.WeatherSnapshot{}})
	d, err := e.Recommendation(context.Background(), "tomato", 20, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.ShouldIrrigate || d.SoilMoistureThreshold != 30 {
		t.Fatalf("empty forecast should use fallback: %+v", d)
	}
}

func TestNextIrrigationDateScansForecast(t *testing.T) {
	e := newTestEngine(stubWeather{})
	base := time.Date(2025, 6, 29, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return base }

	// Day 1 is rainy, day 2 is the first dry day.
	d, err := e.Recommendation(context.Background(), "tomato", 45, days(0, 6, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := base.AddDate(0, 0, 2).Format("Mon, Jan 2")
	if d.NextIrrigationDate != want {
		t.Fatalf("expected %q, got %q", want, d.NextIrrigationDate)
	}

	// Day 1 is dry.
	d, err = e.Recommendation(context.Background(), "tomato", 45, days(0, 1, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.NextIrrigationDate != "Tomorrow" {
		t.Fatalf("expected Tomorrow, got %q", d.NextIrrigationDate)
	}

	// Every upcoming day is rainy.
	d, err = e.Recommendation(context.Background(), "tomato", 45, days(0, 6, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.NextIrrigationDate != "3 days from now" {
		t.Fatalf("expected default date, got %q", d.NextIrrigationDate)
	}
}

func TestTips(t *testing.T) {
	e := newTestEngine(stubWeather{})
	tips, err := e.Tips("rice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) == 0 {
		t.Fatal("expected tips for rice")
	}
	if _, err := e.Tips("durian"); err == nil {
		t.Fatal("expected error for unknown crop")
	}
}

func TestIdealIrrigationWindow(t *testing.T) {
	tests := []struct {
		name string
		snap models.WeatherSnapshot
		hour int
		want bool
	}{
		{"cool morning", models.WeatherSnapshot{Temperature: 22, Humidity: 60, WindSpeed: 5}, 7, true},
		{"evening", models.WeatherSnapshot{Temperature: 28, Humidity: 45, WindSpeed: 10}, 18, true},
		{"midday", models.WeatherSnapshot{Temperature: 22, Humidity: 60, WindSpeed: 5}, 13, false},
		{"too hot", models.WeatherSnapshot{Temperature: 35, Humidity: 60, WindSpeed: 5}, 7, false},
		{"too dry", models.WeatherSnapshot{Temperature: 22, Humidity: 20, WindSpeed: 5}, 7, false},
		{"too windy", models.WeatherSnapshot{Temperature: 22, Humidity: 60, WindSpeed: 25}, 7, false},
	}
	for _, tc := range tests {
		if got := IdealIrrigationWindow(tc.snap, tc.hour); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
