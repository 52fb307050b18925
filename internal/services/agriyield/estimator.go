package agriyield

import (
	"fmt"
	"math"
	"time"

	"AgriPulse/internal/domain/models"
)

// Units accepted for farm area.
const (
	UnitAcre    = "acre"
	UnitHectare = "hectare"
)

type cropYield struct {
	perHectare float64 // tons
	perAcre    float64 // tons
	tip        string
}

// Average yields by crop, tons per unit area.
var yieldData = map[string]cropYield{
	"tomato": {perHectare: 49.4, perAcre: 20, tip: "Use drip irrigation and mulching for better yields"},
	"wheat":  {perHectare: 7.4, perAcre: 3, tip: "Ensure proper spacing and timely irrigation"},
	"rice":   {perHectare: 9.9, perAcre: 4, tip: "Maintain water level at 2-3 inches during growth"},
	"potato": {perHectare: 61.8, perAcre: 25, tip: "Hill soil around plants and control pests early"},
	"onion":  {perHectare: 37.1, perAcre: 15, tip: "Ensure good drainage and balanced fertilization"},
}

// Estimator projects harvest tonnage from farm area and crop averages.
type Estimator struct {
	now func() time.Time
}

func NewEstimator() *Estimator {
	return &Estimator{now: time.Now}
}

// Tip returns the agronomy note attached to a crop's yield data.
func (e *Estimator) Tip(crop string) (string, error) {
	data, ok := yieldData[crop]
	if !ok {
		return "", fmt.Errorf("no yield data for crop %q", crop)
	}
	return data.tip, nil
}

// Estimate computes the expected harvest for an area in the given unit.
func (e *Estimator) Estimate(crop string, area float64, unit string) (models.YieldEstimate, error) {
	data, ok := yieldData[crop]
	if !ok {
		return models.YieldEstimate{}, fmt.Errorf("no yield data for crop %q", crop)
	}
	if area <= 0 {
		return models.YieldEstimate{}, fmt.Errorf("farm area must be positive, got %v", area)
	}

	perUnit := data.perHectare
	switch unit {
	case UnitHectare:
	case UnitAcre:
		perUnit = data.perAcre
	default:
		return models.YieldEstimate{}, fmt.Errorf("unsupported area unit %q", unit)
	}

	return models.YieldEstimate{
		Crop:           crop,
		Area:           area,
		Unit:           unit,
		EstimatedTons:  round2(area * perUnit),
		PerAreaAverage: perUnit,
		Date:           e.now().Format("2006-01-02"),
	}, nil
}

// Analytics summarizes an estimate history, newest entry first. The trend
// compares the newer half against the older half and calls anything within
// ±5% stable.
func (e *Estimator) Analytics(history []models.YieldEstimate) (models.YieldAnalytics, bool) {
	if len(history) == 0 {
		return models.YieldAnalytics{}, false
	}

	out := models.YieldAnalytics{
		Count: len(history),
		Best:  history[0],
		Worst: history[0],
		Trend: "stable",
	}
	for _, est := range history {
		out.TotalTons += est.EstimatedTons
		if est.EstimatedTons > out.Best.EstimatedTons {
			out.Best = est
		}
		if est.EstimatedTons < out.Worst.EstimatedTons {
			out.Worst = est
		}
	}
	out.AvgTons = round2(out.TotalTons / float64(len(history)))
	out.TotalTons = round2(out.TotalTons)

	mid := len(history) / 2
	if mid == 0 {
		return out, true
	}
	newerAvg := meanTons(history[:mid])
	olderAvg := meanTons(history[mid:])
	if olderAvg == 0 {
		return out, true
	}
	out.TrendPct = round2((newerAvg - olderAvg) / olderAvg * 100)
	switch {
	case math.Abs(out.TrendPct) < 5:
		out.Trend = "stable"
	case out.TrendPct > 0:
		out.Trend = "increasing"
	default:
		out.Trend = "decreasing"
	}
	return out, true
}

func meanTons(entries []models.YieldEstimate) float64 {
	total := 0.0
	for _, est := range entries {
		total += est.EstimatedTons
	}
	return total / float64(len(entries))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
