package models

// CarbonInputs are weekly farm activity figures supplied by the farmer.
type CarbonInputs struct {
	FertilizerUreaKg float64 `json:"fertilizerUrea"`
	FertilizerDAPKg  float64 `json:"fertilizerDap"`
	TractorHours     float64 `json:"tractorHours"`
	PumpHours        float64 `json:"pumpHours"`
	FuelLiters       float64 `json:"fuelUsed,omitempty"`
	ElectricityKWh   float64 `json:"electricityUsed,omitempty"`
	FarmAreaHa       float64 `json:"farmArea,omitempty"`
}

// CarbonFootprint is the estimated weekly emission breakdown in kg CO2e.
type CarbonFootprint struct {
	Fertilizer float64  `json:"fertilizer"`
	Machinery  float64  `json:"machinery"`
	Other      float64  `json:"other"`
	Total      float64  `json:"total"`
	Level      string   `json:"level"` // low | medium | high
	Tips       []string `json:"tips"`
}

// YieldEstimate is one computed yield figure for a crop and area.
type YieldEstimate struct {
	Crop           string  `json:"crop"`
	Area           float64 `json:"area"`
	Unit           string  `json:"unit"` // acre | hectare
	EstimatedTons  float64 `json:"estimatedYield"`
	PerAreaAverage float64 `json:"perAreaAverage"`
	Date           string  `json:"date"`
}

// YieldAnalytics summarizes a farmer's estimate history.
type YieldAnalytics struct {
	Count     int           `json:"count"`
	Best      YieldEstimate `json:"best"`
	Worst     YieldEstimate `json:"worst"`
	AvgTons   float64       `json:"avgTons"`
	Trend     string        `json:"trend"` // increasing | decreasing | stable
	TrendPct  float64       `json:"trendPct"`
	TotalTons float64       `json:"totalTons"`
}

// PestDiagnosis is the opaque classifier verdict for a plant photo.
type PestDiagnosis struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Remedies   []string `json:"remedies,omitempty"`
}
