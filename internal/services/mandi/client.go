package mandi

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/creasty/defaults"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/service/ratelimit"
	pkghttp "AgriPulse/pkg/http"
)

// Config configures the data.gov.in mandi price resource.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url" default:"https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"`
	Limit   int    `yaml:"limit" default:"100"`
	// RatePerMin caps outgoing requests; the public resource throttles
	// aggressively.
	RatePerMin float64 `yaml:"rate_per_min" default:"30"`
}

// commodityNames maps crop ids to the commodity names the resource indexes.
var commodityNames = map[string]string{
	"tomato":    "Tomato",
	"onion":     "Onion",
	"potato":    "Potato",
	"wheat":     "Wheat",
	"rice":      "Rice",
	"sugarcane": "Sugarcane",
}

// Client fetches modal mandi prices from the open government data API.
type Client struct {
	cfg     Config
	client  *pkghttp.Client
	limiter *ratelimit.Limiter
}

func NewClient(cfg Config, client *pkghttp.Client, limiter *ratelimit.Limiter) *Client {
	_ = defaults.Set(&cfg)
	if client == nil {
		client = pkghttp.NewClient()
	}
	if limiter == nil {
		limiter = ratelimit.New()
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

var _ DataSource = (*Client)(nil)

func (c *Client) Name() string { return "mandi-api" }

type apiResponse struct {
	Records []struct {
		State       string `json:"state"`
		District    string `json:"district"`
		Market      string `json:"market"`
		Commodity   string `json:"commodity"`
		ArrivalDate string `json:"arrival_date"`
		ModalPrice  string `json:"modal_price"`
	} `json:"records"`
}

// Prices returns the crop's modal prices ascending by date. Records with
// unparseable prices are skipped rather than failing the batch.
func (c *Client) Prices(ctx context.Context, crop string) ([]models.PricePoint, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("api key not configured")
	}
	if !c.limiter.Allow("mandi-api", c.cfg.RatePerMin, c.cfg.RatePerMin/60) {
		return nil, fmt.Errorf("rate limit exceeded")
	}
	commodity, ok := commodityNames[crop]
	if !ok {
		commodity = crop
	}

	var resp apiResponse
	err := c.client.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    c.cfg.BaseURL,
		QueryParams: map[string][]string{
			"api-key":            {c.cfg.APIKey},
			"format":             {"json"},
			"limit":              {strconv.Itoa(c.cfg.Limit)},
			"filters[commodity]": {commodity},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch mandi prices: %w", err)
	}

	points := make([]models.PricePoint, 0, len(resp.Records))
	for _, rec := range resp.Records {
		price, perr := strconv.ParseFloat(rec.ModalPrice, 64)
		if perr != nil {
			continue
		}
		points = append(points, models.PricePoint{
			Date:  normalizeDate(rec.ArrivalDate),
			Price: price,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// normalizeDate converts the resource's dd/mm/yyyy arrival dates to ISO.
func normalizeDate(raw string) string {
	if t, err := time.Parse("02/01/2006", raw); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("2006-01-02")
	}
	return raw
}
