package irrigation

import (
	"context"
	"fmt"
	"time"

	"github.com/creasty/defaults"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/domain/service"
)

// Tunables holds the irrigation constants, tunable via config.
type Tunables struct {
	// FallbackThresholdPct is the moisture threshold applied when no
	// weather data is available.
	FallbackThresholdPct float64 `yaml:"fallback_threshold_pct" default:"30"`
	// LowRainMm marks a forecast day as dry enough to irrigate on.
	LowRainMm      float64 `yaml:"low_rain_mm" default:"5"`
	RainWindowDays int     `yaml:"rain_window_days" default:"2"`
	ETLossMinPct   float64 `yaml:"et_loss_min_pct" default:"2"`
	ETLossMaxPct   float64 `yaml:"et_loss_max_pct" default:"4"`
	RainAbsorption float64 `yaml:"rain_absorption" default:"0.8"`
	BoostPct       float64 `yaml:"boost_pct" default:"25"`
	ScheduleDays   int     `yaml:"schedule_days" default:"7"`
}

// Engine decides whether a field needs irrigation today, given the crop's
// threshold profile, the current soil moisture, and the short-term rainfall
// forecast. A weather provider failure degrades to a moisture-only decision
// instead of erroring.
type Engine struct {
	weather service.WeatherProvider
	crops   map[string]models.CropProfile
	tun     Tunables
	now     func() time.Time
}

// NewEngine builds an engine over the given crop table. A nil table falls
// back to DefaultCropTable.
func NewEngine(weather service.WeatherProvider, crops map[string]models.CropProfile, tun Tunables) *Engine {
	_ = defaults.Set(&tun)
	if crops == nil {
		crops = DefaultCropTable()
	}
	return &Engine{weather: weather, crops: crops, tun: tun, now: time.Now}
}

// Profile looks up the threshold profile for a crop id.
func (e *Engine) Profile(crop string) (models.CropProfile, error) {
	p, ok := e.crops[crop]
	if !ok {
		return models.CropProfile{}, &UnknownCropError{Crop: crop}
	}
	return p, nil
}

// Recommendation produces a single-day irrigation decision. When forecast
// is non-nil it is used as-is and the weather provider is not consulted;
// otherwise the provider supplies it, and a provider failure triggers the
// moisture-only fallback rather than an error. An unknown crop is always
// an error: without a threshold there is nothing to decide against.
func (e *Engine) Recommendation(ctx context.Context, crop string, soilMoisture float64, forecast []models.ForecastDay) (models.IrrigationDecision, error) {
	profile, err := e.Profile(crop)
	if err != nil {
		return models.IrrigationDecision{}, err
	}

	if forecast == nil {
		snap, werr := e.weather.Forecast(ctx)
		if werr != nil || len(snap.Forecast) == 0 {
			return e.fallbackDecision(soilMoisture), nil
		}
		forecast = snap.Forecast
	}
	if len(forecast) > 3 {
		forecast = forecast[:3]
	}

	rain48h := 0.0
	for i := 0; i < e.tun.RainWindowDays && i < len(forecast); i++ {
		rain48h += forecast[i].RainfallMm
	}

	decision := models.IrrigationDecision{SoilMoistureThreshold: profile.MinSoilMoisture}
	switch {
	case soilMoisture >= profile.MinSoilMoisture:
		decision.ShouldIrrigate = false
		decision.Reason = fmt.Sprintf("Soil moisture (%.0f%%) is above the %.0f%% threshold for %s.",
			soilMoisture, profile.MinSoilMoisture, profile.DisplayName)
	case rain48h >= profile.RainfallOffsetMm:
		decision.ShouldIrrigate = false
		decision.Reason = fmt.Sprintf("Soil moisture is low, but %.1f mm of rain expected within 48 hours should replenish it.", rain48h)
	default:
		decision.ShouldIrrigate = true
		decision.Reason = fmt.Sprintf("Soil moisture (%.0f%%) is below the %.0f%% threshold for %s and little rain is expected.",
			soilMoisture, profile.MinSoilMoisture, profile.DisplayName)
	}
	decision.NextIrrigationDate = e.nextIrrigationDate(decision.ShouldIrrigate, forecast)
	return decision, nil
}

// nextIrrigationDate picks the next recommended date: today when irrigating,
// otherwise the first upcoming forecast day with little rain.
func (e *Engine) nextIrrigationDate(irrigateToday bool, forecast []models.ForecastDay) string {
	if irrigateToday {
		return "Today"
	}
	for offset := 1; offset < len(forecast); offset++ {
		if forecast[offset].RainfallMm < e.tun.LowRainMm {
			return e.formatOffset(offset)
		}
	}
	return "3 days from now"
}

func (e *Engine) formatOffset(offset int) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return e.now().AddDate(0, 0, offset).Format("Mon, Jan 2")
	}
}

// fallbackDecision is the degraded mode used when weather data is
// unavailable: irrigate iff moisture is under the fallback threshold.
func (e *Engine) fallbackDecision(soilMoisture float64) models.IrrigationDecision {
	return models.IrrigationDecision{
		ShouldIrrigate:        soilMoisture < e.tun.FallbackThresholdPct,
		Reason:                "Weather data unavailable; recommendation based on soil moisture only.",
		NextIrrigationDate:    e.formatOffset(1),
		SoilMoistureThreshold: e.tun.FallbackThresholdPct,
	}
}
