package models

import "time"

// Market trend and signal classifications derived from price series.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendStable  = "stable"

	VolatilityLow    = "low"
	VolatilityMedium = "medium"
	VolatilityHigh   = "high"

	SignalBuy  = "BUY"
	SignalSell = "SELL"
	SignalHold = "HOLD"
)

// PricePoint is one observed mandi price, immutable once recorded.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// ForecastPoint is one synthesized future price. Generated fresh per
// request, never persisted as ground truth.
type ForecastPoint struct {
	Date      string  `json:"date"`
	Predicted float64 `json:"pred"`
}

// MarketInsight is the farmer-facing readout recomputed on every fetch.
type MarketInsight struct {
	Trend          string  `json:"trend"`      // bullish | bearish | stable
	Volatility     string  `json:"volatility"` // low | medium | high
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"` // [0,1]
}

// ForecastStats summarizes a forecast for the dashboard cards.
type ForecastStats struct {
	AveragePrice   float64   `json:"averagePrice"`
	HighestPrice   float64   `json:"highestPrice"`
	LowestPrice    float64   `json:"lowestPrice"`
	BestSellingDay DayPrice  `json:"bestSellingDay"`
	PercentChange  float64   `json:"percentChange"`
	SMA7           float64   `json:"sma7"`
	SMA14          float64   `json:"sma14"`
	SMA30          float64   `json:"sma30"`
	SMA7Series     []float64 `json:"sma7Series,omitempty"`
	SMA14Series    []float64 `json:"sma14Series,omitempty"`
	RSI            float64   `json:"rsi"`
	MarketSignal   string    `json:"marketSignal"` // BUY | SELL | HOLD
}

// DayPrice pairs a calendar date with a price.
type DayPrice struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// MarketForecast is the full forecaster-screen payload for one crop.
type MarketForecast struct {
	Crop        string          `json:"crop"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Historical  []PricePoint    `json:"historical"`
	Forecast    []ForecastPoint `json:"forecast"`
	Stats       *ForecastStats  `json:"stats,omitempty"`
	Insight     *MarketInsight  `json:"insights,omitempty"`
	Source      string          `json:"source"` // mandi | store | sample
}
