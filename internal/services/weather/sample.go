package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"AgriPulse/internal/domain/models"
)

// SampleSource serves a weather snapshot from a bundled JSON file, used
// when the live API is unreachable or unconfigured.
type SampleSource struct {
	path string
}

func NewSampleSource(path string) *SampleSource {
	return &SampleSource{path: path}
}

var _ DataSource = (*SampleSource)(nil)

func (s *SampleSource) Name() string { return "sample" }

type sampleFile struct {
	Current struct {
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
		Rainfall    float64 `json:"rainfall"`
		WindSpeed   float64 `json:"wind_speed"`
		Description string  `json:"description"`
	} `json:"current"`
	Forecast []models.ForecastDay `json:"forecast"`
}

func (s *SampleSource) Fetch(ctx context.Context) (models.WeatherSnapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("read sample file: %w", err)
	}
	var file sampleFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("parse sample file: %w", err)
	}

	snap := models.WeatherSnapshot{
		Temperature: file.Current.Temperature,
		Humidity:    file.Current.Humidity,
		Rainfall:    file.Current.Rainfall,
		WindSpeed:   file.Current.WindSpeed,
		Description: file.Current.Description,
		Forecast:    file.Forecast,
	}
	// Re-date the canned forecast so day offsets line up with today.
	for i := range snap.Forecast {
		snap.Forecast[i].Date = time.Now().AddDate(0, 0, i).Format("2006-01-02")
	}
	return snap, nil
}

// StaticSource is the last-resort source with hardcoded conditions. It
// never fails, so it belongs at the end of the chain.
type StaticSource struct{}

func NewStaticSource() *StaticSource { return &StaticSource{} }

var _ DataSource = (*StaticSource)(nil)

func (StaticSource) Name() string { return "static" }

func (StaticSource) Fetch(ctx context.Context) (models.WeatherSnapshot, error) {
	days := []models.ForecastDay{
		{RainfallMm: 2.3, Temperature: 27.2, Humidity: 72, Description: "Light Rain"},
		{RainfallMm: 8.7, Temperature: 25.8, Humidity: 78, Description: "Moderate Rain"},
		{RainfallMm: 0.5, Temperature: 29.1, Humidity: 58, Description: "Partly Cloudy"},
		{RainfallMm: 0, Temperature: 30.2, Humidity: 52, Description: "Sunny"},
		{RainfallMm: 15.2, Temperature: 24.5, Humidity: 85, Description: "Heavy Rain"},
		{RainfallMm: 1.1, Temperature: 28.4, Humidity: 61, Description: "Partly Cloudy"},
		{RainfallMm: 0, Temperature: 29.6, Humidity: 55, Description: "Sunny"},
	}
	for i := range days {
		days[i].Date = time.Now().AddDate(0, 0, i).Format("2006-01-02")
	}
	return models.WeatherSnapshot{
		Temperature: 28.5,
		Humidity:    65,
		Rainfall:    0,
		WindSpeed:   8,
		Description: "Partly Cloudy",
		Forecast:    days,
	}, nil
}
