package mandi

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"AgriPulse/internal/domain/models"
)

// SampleSource serves price history from a bundled JSON file keyed by crop.
type SampleSource struct {
	path string
}

func NewSampleSource(path string) *SampleSource {
	return &SampleSource{path: path}
}

var _ DataSource = (*SampleSource)(nil)

func (s *SampleSource) Name() string { return "sample" }

func (s *SampleSource) Prices(ctx context.Context, crop string) ([]models.PricePoint, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read sample file: %w", err)
	}
	var byCrop map[string][]models.PricePoint
	if err := json.Unmarshal(raw, &byCrop); err != nil {
		return nil, fmt.Errorf("parse sample file: %w", err)
	}
	return byCrop[crop], nil
}

// Typical modal prices in INR per quintal, used to synthesize a plausible
// series when nothing else is available.
var basePrices = map[string]float64{
	"tomato":    1800,
	"onion":     1500,
	"potato":    1200,
	"wheat":     2200,
	"rice":      2800,
	"sugarcane": 350,
}

// StaticSource is the last-resort source: a deterministic 30-day synthetic
// series around the crop's typical price. It never fails for known crops.
type StaticSource struct {
	now func() time.Time
}

func NewStaticSource() *StaticSource {
	return &StaticSource{now: time.Now}
}

var _ DataSource = (*StaticSource)(nil)

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Prices(ctx context.Context, crop string) ([]models.PricePoint, error) {
	base, ok := basePrices[crop]
	if !ok {
		return nil, fmt.Errorf("no base price for crop %q", crop)
	}
	const days = 30
	end := s.now()
	points := make([]models.PricePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		// Gentle weekly cycle plus a mild upward drift.
		wiggle := math.Sin(float64(i)/7*2*math.Pi) * base * 0.03
		drift := float64(days-1-i) * base * 0.001
		points = append(points, models.PricePoint{
			Date:  end.AddDate(0, 0, -i).Format("2006-01-02"),
			Price: math.Round((base+wiggle+drift)*100) / 100,
		})
	}
	return points, nil
}
