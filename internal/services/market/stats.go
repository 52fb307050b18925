package market

import (
	"math"

	"AgriPulse/internal/domain/models"
)

// Stats summarizes a historical series and its forecast for the dashboard
// cards. SMAs and RSI use historical prices only; avg/min/max and best
// selling day come from the forecast horizon.
func Stats(historical []models.PricePoint, forecast []models.ForecastPoint) *models.ForecastStats {
	if len(historical) == 0 || len(forecast) == 0 {
		return nil
	}
	prices := Prices(historical)
	preds := Predictions(forecast)

	maxPrice := preds[0]
	minPrice := preds[0]
	best := forecast[0]
	for i, p := range preds {
		if p > maxPrice {
			maxPrice = p
			best = forecast[i]
		}
		if p < minPrice {
			minPrice = p
		}
	}

	avg := mean(preds)
	lastHistorical := prices[len(prices)-1]

	return &models.ForecastStats{
		AveragePrice: round2(avg),
		HighestPrice: round2(maxPrice),
		LowestPrice:  round2(minPrice),
		BestSellingDay: models.DayPrice{
			Date:  best.Date,
			Price: round2(best.Predicted),
		},
		PercentChange: round2(PercentChange(lastHistorical, avg)),
		SMA7:          round2(SMA(prices, SMAShortPeriod)),
		SMA14:         round2(SMA(prices, SMALongPeriod)),
		SMA30:         round2(SMA(prices, SMAMonthPeriod)),
		SMA7Series:    SMASeries(prices, SMAShortPeriod),
		SMA14Series:   SMASeries(prices, SMALongPeriod),
		RSI:           round2(RSI(prices, DefaultRSIPeriod)),
		MarketSignal:  Signal(prices),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
