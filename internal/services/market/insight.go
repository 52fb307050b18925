package market

import (
	"fmt"

	"AgriPulse/internal/domain/models"

	"github.com/creasty/defaults"
)

// InsightTunables holds the classification thresholds and confidence
// ceilings, tunable via config.
type InsightTunables struct {
	TrendThreshold float64 `yaml:"trend_threshold" default:"0.05"`
	LowVolBound    float64 `yaml:"low_vol_bound" default:"0.05"`
	MediumVolBound float64 `yaml:"medium_vol_bound" default:"0.15"`

	BullishCeiling float64 `yaml:"bullish_ceiling" default:"0.95"`
	BullishBase    float64 `yaml:"bullish_base" default:"0.7"`
	BearishCeiling float64 `yaml:"bearish_ceiling" default:"0.9"`
	BearishBase    float64 `yaml:"bearish_base" default:"0.65"`
	StableCeiling  float64 `yaml:"stable_ceiling" default:"0.85"`
	StableBase     float64 `yaml:"stable_base" default:"0.6"`
}

// InsightEngine turns a historical series and its synthesized forecast
// into a farmer-facing readout.
type InsightEngine struct {
	tun InsightTunables
}

func NewInsightEngine(tun InsightTunables) *InsightEngine {
	_ = defaults.Set(&tun)
	return &InsightEngine{tun: tun}
}

// Analyze classifies trend and volatility and produces a recommendation
// with a confidence score in [0,1].
func (e *InsightEngine) Analyze(historical []models.PricePoint, forecast []models.ForecastPoint) models.MarketInsight {
	prices := Prices(historical)
	preds := Predictions(forecast)

	var forecastChange float64
	if len(preds) > 0 && preds[0] != 0 {
		forecastChange = (preds[len(preds)-1] - preds[0]) / preds[0]
	}

	trend := models.TrendStable
	switch {
	case forecastChange > e.tun.TrendThreshold:
		trend = models.TrendBullish
	case forecastChange < -e.tun.TrendThreshold:
		trend = models.TrendBearish
	}

	relVol := 0.0
	if m := mean(prices); m != 0 {
		relVol = Volatility(prices) / m
	}
	volLevel := models.VolatilityHigh
	switch {
	case relVol < e.tun.LowVolBound:
		volLevel = models.VolatilityLow
	case relVol < e.tun.MediumVolBound:
		volLevel = models.VolatilityMedium
	}

	var recommendation string
	var confidence float64
	switch trend {
	case models.TrendBullish:
		peak := peakIndex(preds)
		recommendation = fmt.Sprintf(
			"Prices expected to rise. Best selling window: Days %d-%d. Consider holding stock for %d days for maximum profit.",
			peak-1, peak+1, peak)
		confidence = min64(e.tun.BullishCeiling, e.tun.BullishBase+(1-relVol))
	case models.TrendBearish:
		recommendation = "Declining trend detected. Recommend selling immediately or within 2-3 days to avoid loss. Consider bulk sales to wholesale buyers."
		confidence = min64(e.tun.BearishCeiling, e.tun.BearishBase+(1-relVol))
	default:
		recommendation = "Stable market conditions. Normal selling schedule recommended. Monitor daily for sudden changes."
		confidence = min64(e.tun.StableCeiling, e.tun.StableBase+(1-relVol))
	}

	return models.MarketInsight{
		Trend:          trend,
		Volatility:     volLevel,
		Recommendation: recommendation,
		Confidence:     clamp01(confidence),
	}
}

func peakIndex(preds []float64) int {
	peak := 0
	for i, p := range preds {
		if p > preds[peak] {
			peak = i
		}
	}
	return peak
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
