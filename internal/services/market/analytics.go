package market

import (
	"math"

	"AgriPulse/internal/domain/models"
)

// SMA periods used for the crossover signal and dashboard cards.
const (
	SMAShortPeriod = 7
	SMALongPeriod  = 14
	SMAMonthPeriod = 30

	DefaultRSIPeriod = 14
)

// SMA computes the simple moving average of the trailing `period` prices.
// Shorter series degrade gracefully: all available prices are averaged,
// never padded and never an error.
func SMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if len(prices) < period {
		return mean(prices)
	}
	return mean(prices[len(prices)-period:])
}

// SMASeries computes a same-length series where entry i averages the
// trailing window of size min(i+1, period) ending at i. Used for charting,
// not for summary stats.
func SMASeries(prices []float64, period int) []float64 {
	out := make([]float64, 0, len(prices))
	for i := range prices {
		lo := i + 1 - period
		if lo < 0 {
			lo = 0
		}
		out = append(out, mean(prices[lo:i+1]))
	}
	return out
}

// RSI computes the Relative Strength Index over the trailing period.
// Returns the neutral 50 when the series is too short, and 100 when the
// trailing window has no losses.
func RSI(prices []float64, period int) float64 {
	if period <= 0 {
		period = DefaultRSIPeriod
	}
	if len(prices) < period+1 {
		return 50
	}

	gains := make([]float64, 0, len(prices)-1)
	losses := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	avgGain := sum(gains[len(gains)-period:]) / float64(period)
	avgLoss := sum(losses[len(losses)-period:]) / float64(period)
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// Volatility computes the population standard deviation of the series.
func Volatility(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	m := mean(prices)
	var acc float64
	for _, p := range prices {
		d := p - m
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(prices)))
}

// PercentChange computes (current-reference)/reference*100.
// Precondition: reference must be non-zero.
func PercentChange(reference, current float64) float64 {
	return (current - reference) / reference * 100
}

// Signal classifies the SMA(7)/SMA(14) crossover. Exact equality yields
// HOLD; no epsilon is applied.
func Signal(prices []float64) string {
	sma7 := SMA(prices, SMAShortPeriod)
	sma14 := SMA(prices, SMALongPeriod)
	switch {
	case sma7 > sma14:
		return models.SignalBuy
	case sma7 < sma14:
		return models.SignalSell
	default:
		return models.SignalHold
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// Prices extracts the price column from a historical series.
func Prices(points []models.PricePoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Price)
	}
	return out
}

// Predictions extracts the predicted column from a forecast series.
func Predictions(points []models.ForecastPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Predicted)
	}
	return out
}
