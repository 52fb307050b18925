package models

// ForecastDay is one day of rainfall forecast.
type ForecastDay struct {
	Date        string  `json:"date"`
	RainfallMm  float64 `json:"rainfall"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description,omitempty"`
}

// WeatherSnapshot is the resolved current weather plus daily forecast.
type WeatherSnapshot struct {
	Temperature float64       `json:"temperature"`
	Humidity    float64       `json:"humidity"`
	Rainfall    float64       `json:"rainfall"`
	WindSpeed   float64       `json:"wind_speed"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Forecast    []ForecastDay `json:"forecast"`
	Source      string        `json:"source"` // openweather | sample | static
}
