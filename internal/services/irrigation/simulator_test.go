package irrigation

import (
	"context"
	"errors"
	"testing"

	"AgriPulse/internal/domain/models"
)

// fixedRand pins the evapotranspiration draw so schedules are exact.
type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

func weekOfRain(rain ...float64) stubWeather {
	return stubWeather{snap: models.WeatherSnapshot{Forecast: days(rain...)}}
}

func TestWeeklyScheduleChained(t *testing.T) {
	// Fixed draw of 0.5 makes the daily loss exactly 3%. Starting from 50%
	// with no rain, moisture falls 3 points a day until day 6 dips below the
	// tomato threshold and the boost kicks in.
	e := newTestEngine(weekOfRain(0, 0, 0, 0, 0, 0, 0))
	sim := NewSimulator(e, fixedRand{v: 0.5})

	entries, err := sim.WeeklySchedule(context.Background(), "tomato", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(entries))
	}

	wantMoisture := []int{47, 44, 41, 38, 35, 32, 54}
	for i, want := range wantMoisture {
		if entries[i].ExpectedMoisture != want {
			t.Fatalf("day %d: expected moisture %d, got %d", i, want, entries[i].ExpectedMoisture)
		}
		wantIrrigate := i == 6
		if entries[i].ShouldIrrigate != wantIrrigate {
			t.Fatalf("day %d: expected shouldIrrigate=%v, got %v", i, wantIrrigate, entries[i].ShouldIrrigate)
		}
	}
	if entries[0].Date != "Today" || entries[1].Date != "Tomorrow" {
		t.Fatalf("expected Today/Tomorrow leading dates, got %q/%q", entries[0].Date, entries[1].Date)
	}
}

func TestWeeklyScheduleRainAbsorption(t *testing.T) {
	// 10mm on day 0 absorbs as +8 moisture against the -3 loss.
	e := newTestEngine(weekOfRain(10, 0, 0, 0, 0, 0, 0))
	sim := NewSimulator(e, fixedRand{v: 0.5})

	entries, err := sim.WeeklySchedule(context.Background(), "tomato", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries[0].ExpectedMoisture != 55 {
		t.Fatalf("expected day 0 moisture 55, got %d", entries[0].ExpectedMoisture)
	}
}

func TestWeeklyScheduleCapsAtHundred(t *testing.T) {
	e := newTestEngine(weekOfRain(60, 60, 60, 60, 60, 60, 60))
	sim := NewSimulator(e, fixedRand{v: 0.5})

	entries, err := sim.WeeklySchedule(context.Background(), "tomato", 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, entry := range entries {
		if entry.ExpectedMoisture < 0 || entry.ExpectedMoisture > 100 {
			t.Fatalf("day %d: moisture %d out of range", i, entry.ExpectedMoisture)
		}
	}
}

func TestWeeklyScheduleWeatherFailure(t *testing.T) {
	e := newTestEngine(stubWeather{err: errors.New("api down")})
	sim := NewSimulator(e, fixedRand{v: 0.5})

	entries, err := sim.WeeklySchedule(context.Background(), "tomato", 50)
	if err == nil {
		t.Fatal("expected error when weather is unavailable")
	}
	if entries != nil {
		t.Fatalf("expected no schedule, got %d entries", len(entries))
	}
}

func TestWeeklyScheduleUnknownCrop(t *testing.T) {
	e := newTestEngine(weekOfRain(0, 0, 0, 0, 0, 0, 0))
	sim := NewSimulator(e, fixedRand{v: 0.5})

	_, err := sim.WeeklySchedule(context.Background(), "durian", 50)
	var unknownErr *UnknownCropError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownCropError, got %v", err)
	}
}
