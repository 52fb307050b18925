package market

import (
	"math/rand"
	"time"

	"AgriPulse/internal/domain/models"

	"github.com/creasty/defaults"
)

// Rand is the randomness source for forecast perturbation. Production uses
// system entropy; tests inject a seeded source to pin the output.
type Rand interface {
	Float64() float64
}

// SynthTunables holds the synthesizer constants, tunable via config.
type SynthTunables struct {
	HorizonDays    int     `yaml:"horizon_days" default:"14"`
	EMAPeriod      int     `yaml:"ema_period" default:"7"`
	SeasonalWindow int     `yaml:"seasonal_window" default:"7"`
	LinearWeight   float64 `yaml:"linear_weight" default:"0.4"`
	EMAWeight      float64 `yaml:"ema_weight" default:"0.3"`
	SeasonalWeight float64 `yaml:"seasonal_weight" default:"0.3"`
}

// Synthesizer generates a forward-looking price series from a historical
// one: OLS trend, EMA drift, seasonal adjustment, and a bounded random walk
// sized by the historical volatility.
type Synthesizer struct {
	tun SynthTunables
	rng Rand
}

// NewSynthesizer builds a synthesizer. A nil rng falls back to a
// time-seeded source.
func NewSynthesizer(tun SynthTunables, rng Rand) *Synthesizer {
	_ = defaults.Set(&tun)
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{tun: tun, rng: rng}
}

// Forecast synthesizes the forward series. Output is not deterministic
// between calls unless the injected Rand is seeded.
func (s *Synthesizer) Forecast(historical []models.PricePoint) []models.ForecastPoint {
	if len(historical) == 0 {
		return nil
	}
	prices := Prices(historical)

	slope, intercept := linearRegression(prices)
	lastEMA := emaLast(prices, s.tun.EMAPeriod)
	seasonal := seasonalFactor(prices, s.tun.SeasonalWindow)
	vol := Volatility(prices)

	lastDate := parseDay(historical[len(historical)-1].Date)
	out := make([]models.ForecastPoint, 0, s.tun.HorizonDays)
	for i := 1; i <= s.tun.HorizonDays; i++ {
		linearPred := slope*float64(len(prices)+i) + intercept
		// Known instability: divides by the regression intercept, which the
		// upstream model never guards. Kept as-is; see DESIGN.md.
		emaPred := lastEMA * (1 + (slope/intercept)*0.1)
		seasonalPred := linearPred * seasonal

		pred := linearPred*s.tun.LinearWeight +
			emaPred*s.tun.EMAWeight +
			seasonalPred*s.tun.SeasonalWeight

		// bounded random walk within +/- one historical stdev
		pred += (s.rng.Float64() - 0.5) * vol * 2
		if pred < 0 {
			pred = 0
		}

		out = append(out, models.ForecastPoint{
			Date:      lastDate.AddDate(0, 0, i).Format("2006-01-02"),
			Predicted: pred,
		})
	}
	return out
}

// linearRegression fits price against the integer time index 0..n-1.
func linearRegression(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, mean(y)
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// emaLast returns the final value of the exponential moving average with
// smoothing k = 2/(period+1), seeded at the first price.
func emaLast(prices []float64, period int) float64 {
	k := 2 / float64(period+1)
	ema := prices[0]
	for i := 1; i < len(prices); i++ {
		ema = prices[i]*k + ema*(1-k)
	}
	return ema
}

// seasonalFactor is mean(last window)/mean(all), or 1 for short histories.
func seasonalFactor(prices []float64, window int) float64 {
	if len(prices) < window {
		return 1
	}
	return mean(prices[len(prices)-window:]) / mean(prices)
}

func parseDay(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Now().Truncate(24 * time.Hour)
}
