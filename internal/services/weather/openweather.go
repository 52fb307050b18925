package weather

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/creasty/defaults"

	"AgriPulse/internal/domain/models"
	pkghttp "AgriPulse/pkg/http"
)

// OpenWeatherConfig configures the api.openweathermap.org source.
type OpenWeatherConfig struct {
	APIKey  string  `yaml:"api_key"`
	BaseURL string  `yaml:"base_url" default:"https://api.openweathermap.org/data/2.5"`
	Lat     float64 `yaml:"lat"`
	Lon     float64 `yaml:"lon"`
}

// OpenWeatherClient fetches current conditions plus a 5-day forecast from
// OpenWeatherMap. It is skipped entirely when no API key is configured.
type OpenWeatherClient struct {
	cfg    OpenWeatherConfig
	client *pkghttp.Client
}

func NewOpenWeatherClient(cfg OpenWeatherConfig, client *pkghttp.Client) *OpenWeatherClient {
	_ = defaults.Set(&cfg)
	if client == nil {
		client = pkghttp.NewClient()
	}
	return &OpenWeatherClient{cfg: cfg, client: client}
}

var _ DataSource = (*OpenWeatherClient)(nil)

func (c *OpenWeatherClient) Name() string { return "openweather" }

type owCurrentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

type owForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Rain struct {
			ThreeHour float64 `json:"3h"`
		} `json:"rain"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

func (c *OpenWeatherClient) Fetch(ctx context.Context) (models.WeatherSnapshot, error) {
	if c.cfg.APIKey == "" {
		return models.WeatherSnapshot{}, fmt.Errorf("api key not configured")
	}

	var current owCurrentResponse
	if err := c.get(ctx, "/weather", &current); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("fetch current weather: %w", err)
	}
	var forecast owForecastResponse
	if err := c.get(ctx, "/forecast", &forecast); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("fetch forecast: %w", err)
	}

	snap := models.WeatherSnapshot{
		Temperature: round1(current.Main.Temp),
		Humidity:    current.Main.Humidity,
		Rainfall:    current.Rain.OneHour,
		WindSpeed:   current.Wind.Speed,
		Location:    fmt.Sprintf("%s, %s", current.Name, current.Sys.Country),
	}
	if len(current.Weather) > 0 {
		snap.Description = current.Weather[0].Description
	}

	// The 5-day feed carries 3-hourly entries; keep one reading per day.
	seen := make(map[string]bool)
	for _, item := range forecast.List {
		date := time.Unix(item.Dt, 0).UTC().Format("2006-01-02")
		if seen[date] || len(snap.Forecast) >= 5 {
			continue
		}
		seen[date] = true
		day := models.ForecastDay{
			Date:        date,
			RainfallMm:  item.Rain.ThreeHour,
			Temperature: round1(item.Main.Temp),
			Humidity:    item.Main.Humidity,
		}
		if len(item.Weather) > 0 {
			day.Description = item.Weather[0].Description
		}
		snap.Forecast = append(snap.Forecast, day)
	}
	return snap, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, path string, dest interface{}) error {
	return c.client.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    c.cfg.BaseURL + path,
		QueryParams: map[string][]string{
			"lat":   {fmt.Sprintf("%g", c.cfg.Lat)},
			"lon":   {fmt.Sprintf("%g", c.cfg.Lon)},
			"appid": {c.cfg.APIKey},
			"units": {"metric"},
		},
	}, dest)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
