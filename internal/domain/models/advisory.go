package models

import "time"

// DashboardSnapshot is a consolidated view for the landing screen.
// Partial failures are reported per section instead of failing the whole
// payload.
type DashboardSnapshot struct {
	Crop       string              `json:"crop"`
	Timestamp  time.Time           `json:"timestamp"`
	Weather    *WeatherSnapshot    `json:"weather,omitempty"`
	Market     *MarketForecast     `json:"market,omitempty"`
	Irrigation *IrrigationDecision `json:"irrigation,omitempty"`
	Errors     map[string]string   `json:"errors,omitempty"`
}
