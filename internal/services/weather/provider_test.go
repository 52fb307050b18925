package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"AgriPulse/internal/domain/models"
	pkghttp "AgriPulse/pkg/http"
	"AgriPulse/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

type fakeSource struct {
	name string
	snap models.WeatherSnapshot
	err  error
}

func (f fakeSource) Name() string { return f.name }
func (f fakeSource) Fetch(ctx context.Context) (models.WeatherSnapshot, error) {
	return f.snap, f.err
}

func TestProviderFallsThroughFailedSources(t *testing.T) {
	good := models.WeatherSnapshot{Temperature: 25, Forecast: []models.ForecastDay{{Date: "2025-07-01"}}}
	p := NewProvider(testLogger(t),
		fakeSource{name: "first", err: errors.New("down")},
		fakeSource{name: "second", snap: models.WeatherSnapshot{}}, // no forecast
		fakeSource{name: "third", snap: good},
	)

	snap, err := p.Forecast(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Source != "third" {
		t.Fatalf("expected snapshot from third source, got %q", snap.Source)
	}
}

func TestProviderAllSourcesFail(t *testing.T) {
	p := NewProvider(testLogger(t), fakeSource{name: "only", err: errors.New("down")})
	_, err := p.Forecast(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestStaticSourceAlwaysSucceeds(t *testing.T) {
	snap, err := NewStaticSource().Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Forecast) != 7 {
		t.Fatalf("expected a week of forecast, got %d days", len(snap.Forecast))
	}
}

func TestSampleSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_sample.json")
	content := `{
		"current": {"temperature": 26.5, "humidity": 70, "rainfall": 1.2, "wind_speed": 6, "description": "cloudy"},
		"forecast": [
			{"date": "2024-01-01", "rainfall": 3.5, "temperature": 25, "humidity": 75},
			{"date": "2024-01-02", "rainfall": 0, "temperature": 27, "humidity": 60}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	snap, err := NewSampleSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Temperature != 26.5 || len(snap.Forecast) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Forecast[0].Date == "2024-01-01" {
		t.Fatal("expected forecast dates re-based to today")
	}
	if snap.Forecast[0].RainfallMm != 3.5 {
		t.Fatalf("expected rainfall preserved, got %v", snap.Forecast[0].RainfallMm)
	}

	if _, err := NewSampleSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpenWeatherClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "test-key" {
			http.Error(w, "missing key", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/weather":
			w.Write([]byte(`{"name":"Mysuru","sys":{"country":"IN"},"main":{"temp":27.34,"humidity":68},"wind":{"speed":4.2},"rain":{"1h":0.4},"weather":[{"description":"light rain"}]}`))
		case "/forecast":
			w.Write([]byte(`{"list":[
				{"dt":1750939200,"main":{"temp":26.1,"humidity":70},"rain":{"3h":2.2},"weather":[{"description":"rain"}]},
				{"dt":1750950000,"main":{"temp":28.0,"humidity":65},"weather":[{"description":"clouds"}]},
				{"dt":1751025600,"main":{"temp":29.5,"humidity":55},"weather":[{"description":"clear"}]}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(OpenWeatherConfig{APIKey: "test-key", BaseURL: srv.URL}, pkghttp.NewClient())
	snap, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Temperature != 27.3 {
		t.Fatalf("expected temperature rounded to 27.3, got %v", snap.Temperature)
	}
	if snap.Location != "Mysuru, IN" {
		t.Fatalf("unexpected location %q", snap.Location)
	}
	// Two 3-hourly entries fall on the same day; only one survives.
	if len(snap.Forecast) != 2 {
		t.Fatalf("expected 2 forecast days, got %d", len(snap.Forecast))
	}
	if snap.Forecast[0].RainfallMm != 2.2 {
		t.Fatalf("expected first day rainfall 2.2, got %v", snap.Forecast[0].RainfallMm)
	}
}

func TestOpenWeatherClientRequiresKey(t *testing.T) {
	client := NewOpenWeatherClient(OpenWeatherConfig{}, nil)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error without api key")
	}
}
