package models

import "time"

// CropProfile is one row of the static crop threshold table.
type CropProfile struct {
	ID               string  `json:"id"`
	DisplayName      string  `json:"name"`
	MinSoilMoisture  float64 `json:"soilMoistureMin"`   // percent, [0,100]
	RainfallOffsetMm float64 `json:"rainfallThreshold"` // mm over 48h that cancels irrigation
}

// SoilReading is a point-in-time soil moisture sample from a field sensor.
type SoilReading struct {
	Field     string  `json:"field"`
	Crop      string  `json:"crop"`
	Timestamp int64   `json:"t"` // unix seconds
	Moisture  float64 `json:"m"` // percent, [0,100]
}

// IrrigationDecision is the single-day recommendation. Each call is
// independent; nothing is cached across calls.
type IrrigationDecision struct {
	ShouldIrrigate        bool    `json:"shouldIrrigate"`
	Reason                string  `json:"reason"`
	NextIrrigationDate    string  `json:"nextIrrigationDate"`
	SoilMoistureThreshold float64 `json:"soilMoistureThreshold"`
}

// ScheduleEntry is one simulated day of the weekly projection. Entries are
// chained: day N's ending moisture seeds day N+1.
type ScheduleEntry struct {
	Date             string `json:"date"`
	ShouldIrrigate   bool   `json:"shouldIrrigate"`
	ExpectedMoisture int    `json:"expectedMoisture"` // percent, rounded
	Reason           string `json:"reason"`
}

// WeeklySchedule wraps the 7-day simulation output.
type WeeklySchedule struct {
	Crop        string          `json:"crop"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Days        []ScheduleEntry `json:"days"`
}
