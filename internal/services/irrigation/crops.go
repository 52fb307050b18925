package irrigation

import (
	"fmt"

	"AgriPulse/internal/domain/models"
)

// UnknownCropError reports a crop id missing from the threshold table.
// There is no fallback for it: without a profile no decision is possible.
type UnknownCropError struct {
	Crop string
}

func (e *UnknownCropError) Error() string {
	return fmt.Sprintf("unknown crop: %s", e.Crop)
}

// DefaultCropTable returns the static crop threshold table. Moisture
// thresholds are percentages, rainfall offsets are mm expected over 48h.
func DefaultCropTable() map[string]models.CropProfile {
	return map[string]models.CropProfile{
		"tomato":    {ID: "tomato", DisplayName: "Tomato", MinSoilMoisture: 30, RainfallOffsetMm: 5},
		"onion":     {ID: "onion", DisplayName: "Onion", MinSoilMoisture: 25, RainfallOffsetMm: 3},
		"potato":    {ID: "potato", DisplayName: "Potato", MinSoilMoisture: 35, RainfallOffsetMm: 6},
		"wheat":     {ID: "wheat", DisplayName: "Wheat", MinSoilMoisture: 20, RainfallOffsetMm: 4},
		"rice":      {ID: "rice", DisplayName: "Rice", MinSoilMoisture: 80, RainfallOffsetMm: 10},
		"sugarcane": {ID: "sugarcane", DisplayName: "Sugarcane", MinSoilMoisture: 40, RainfallOffsetMm: 8},
	}
}
