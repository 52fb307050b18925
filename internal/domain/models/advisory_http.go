package models

// Requests for advisory HTTP endpoints. Defined in domain for consistency and reuse.

type ForecastRequest struct {
	Crop string `query:"crop" json:"crop" validate:"required"`
}

type RecommendationRequest struct {
	Crop     string   `query:"crop" json:"crop" validate:"required"`
	Moisture *float64 `query:"moisture" json:"moisture" validate:"omitempty,gte=0,lte=100"`
	Field    string   `query:"field" json:"field"`
}

type ScheduleRequest struct {
	Crop     string  `query:"crop" json:"crop" validate:"required"`
	Moisture float64 `query:"moisture" json:"moisture" validate:"gte=0,lte=100"`
}

type TipsRequest struct {
	Crop string `query:"crop" json:"crop" validate:"required"`
}

type DashboardRequest struct {
	Crop     string   `query:"crop" json:"crop"`
	Moisture *float64 `query:"moisture" json:"moisture" validate:"omitempty,gte=0,lte=100"`
	Field    string   `query:"field" json:"field"`
}

type CarbonRequest struct {
	Crop             string  `json:"crop"`
	FertilizerUreaKg float64 `json:"fertilizerUrea" validate:"gte=0"`
	FertilizerDAPKg  float64 `json:"fertilizerDap" validate:"gte=0"`
	TractorHours     float64 `json:"tractorHours" validate:"gte=0"`
	PumpHours        float64 `json:"pumpHours" validate:"gte=0"`
	FuelLiters       float64 `json:"fuelUsed" validate:"gte=0"`
	ElectricityKWh   float64 `json:"electricityUsed" validate:"gte=0"`
	FarmAreaHa       float64 `json:"farmArea" validate:"gte=0"`
	PerHectare       bool    `json:"perHectare"`
}

type YieldRequest struct {
	Crop string  `json:"crop" validate:"required"`
	Area float64 `json:"area" validate:"required,gt=0"`
	Unit string  `json:"unit" default:"acre" validate:"oneof=acre hectare"`
}

type ClassifyRequest struct {
	Image string `json:"image" validate:"required"` // base64-encoded photo
}

type PriceHistoryRequest struct {
	Crop string `query:"crop" json:"crop" validate:"required"`
	N    int    `query:"n" json:"n" default:"30" validate:"gte=1,lte=365"`
}
