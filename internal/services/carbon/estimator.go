package carbon

import (
	"math"

	"github.com/creasty/defaults"

	"AgriPulse/internal/domain/models"
)

// Levels for the total weekly footprint.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Tunables holds the emission factors (kg CO2e per unit) and the level
// thresholds (kg CO2e per week).
type Tunables struct {
	UreaFactor        float64 `yaml:"urea_factor" default:"1.5"`
	DAPFactor         float64 `yaml:"dap_factor" default:"1.3"`
	TractorFactor     float64 `yaml:"tractor_factor" default:"2.6"`
	PumpFactor        float64 `yaml:"pump_factor" default:"1.2"`
	DieselFactor      float64 `yaml:"diesel_factor" default:"2.31"`
	ElectricityFactor float64 `yaml:"electricity_factor" default:"0.82"`
	LowThreshold      float64 `yaml:"low_threshold" default:"150"`
	MediumThreshold   float64 `yaml:"medium_threshold" default:"300"`
	BenchmarkBandPct  float64 `yaml:"benchmark_band_pct" default:"10"`
}

var levelTips = map[string][]string{
	LevelLow: {
		"Your footprint is already low. Keep fertilizer doses matched to soil tests.",
		"Consider cover cropping to turn the farm into a net carbon sink.",
	},
	LevelMedium: {
		"Replace part of the urea dose with organic compost.",
		"Service the tractor; a tuned engine burns noticeably less diesel.",
		"Irrigate early morning to cut pump hours lost to evaporation.",
	},
	LevelHigh: {
		"Split fertilizer applications to cut total usage by 15-20%.",
		"Combine field passes to reduce tractor hours.",
		"Consider a solar pump; grid electricity is the dirtiest input here.",
		"Adopt reduced tillage to keep carbon in the soil.",
	},
}

// Benchmarks in kg CO2e per hectare per season.
var cropBenchmarks = map[string]float64{
	"tomato":    2500,
	"onion":     1800,
	"potato":    3200,
	"wheat":     1200,
	"rice":      4500,
	"sugarcane": 2800,
}

const defaultBenchmark = 2000

// Estimator turns weekly activity figures into an emission breakdown.
type Estimator struct {
	tun Tunables
}

func NewEstimator(tun Tunables) *Estimator {
	_ = defaults.Set(&tun)
	return &Estimator{tun: tun}
}

// Footprint computes the weekly emission breakdown from activity inputs.
func (e *Estimator) Footprint(in models.CarbonInputs) models.CarbonFootprint {
	fertilizer := in.FertilizerUreaKg*e.tun.UreaFactor + in.FertilizerDAPKg*e.tun.DAPFactor
	machinery := in.TractorHours*e.tun.TractorFactor + in.PumpHours*e.tun.PumpFactor
	other := in.FuelLiters*e.tun.DieselFactor + in.ElectricityKWh*e.tun.ElectricityFactor

	total := fertilizer + machinery + other
	level := e.level(total)

	return models.CarbonFootprint{
		Fertilizer: round2(fertilizer),
		Machinery:  round2(machinery),
		Other:      round2(other),
		Total:      round2(total),
		Level:      level,
		Tips:       levelTips[level],
	}
}

// PerHectare divides the footprint by farm area. Returns false when no
// usable area was supplied.
func (e *Estimator) PerHectare(in models.CarbonInputs) (models.CarbonFootprint, bool) {
	if in.FarmAreaHa <= 0 {
		return models.CarbonFootprint{}, false
	}
	fp := e.Footprint(in)
	fp.Fertilizer = round2(fp.Fertilizer / in.FarmAreaHa)
	fp.Machinery = round2(fp.Machinery / in.FarmAreaHa)
	fp.Other = round2(fp.Other / in.FarmAreaHa)
	fp.Total = round2(fp.Total / in.FarmAreaHa)
	return fp, true
}

// BenchmarkComparison positions a seasonal per-hectare total against the
// typical figure for the crop. Comparison is "better"/"worse" beyond the
// tunable band (default ±10%), "average" inside it.
type BenchmarkComparison struct {
	Benchmark     float64 `json:"benchmark"`
	Comparison    string  `json:"comparison"`
	PercentageOff float64 `json:"percentageDiff"`
}

func (e *Estimator) CompareToBenchmark(total float64, crop string) BenchmarkComparison {
	benchmark, ok := cropBenchmarks[crop]
	if !ok {
		benchmark = defaultBenchmark
	}
	diff := (total - benchmark) / benchmark * 100

	comparison := "average"
	switch {
	case diff < -e.tun.BenchmarkBandPct:
		comparison = "better"
	case diff > e.tun.BenchmarkBandPct:
		comparison = "worse"
	}
	return BenchmarkComparison{
		Benchmark:     benchmark,
		Comparison:    comparison,
		PercentageOff: math.Round(diff),
	}
}

func (e *Estimator) level(total float64) string {
	switch {
	case total <= e.tun.LowThreshold:
		return LevelLow
	case total <= e.tun.MediumThreshold:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
