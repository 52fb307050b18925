package usecase

import (
	"context"
	"fmt"
	"time"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/services/irrigation"
	"AgriPulse/pkg/logger"
)

// IrrigationUseCase wraps the decision engine and simulator, resolving the
// soil moisture input from the sensor store when the caller does not supply
// one explicitly.
type IrrigationUseCase struct {
	engine   *irrigation.Engine
	sim      *irrigation.Simulator
	readings *ReadingsUseCase
	weather  *WeatherUseCase
	logger   *logger.Logger
	now      func() time.Time
}

func NewIrrigationUseCase(
	engine *irrigation.Engine,
	sim *irrigation.Simulator,
	readings *ReadingsUseCase,
	weather *WeatherUseCase,
	log *logger.Logger,
) *IrrigationUseCase {
	return &IrrigationUseCase{
		engine:   engine,
		sim:      sim,
		readings: readings,
		weather:  weather,
		logger:   log,
		now:      time.Now,
	}
}

// resolveMoisture prefers an explicit value over the field's latest stored
// reading.
func (uc *IrrigationUseCase) resolveMoisture(ctx context.Context, moisture *float64, field string) (float64, error) {
	if moisture != nil {
		return *moisture, nil
	}
	if field == "" {
		return 0, fmt.Errorf("moisture or field required")
	}
	latest, err := uc.readings.LatestMoisture(ctx, field)
	if err != nil {
		return 0, fmt.Errorf("resolve moisture for field %s: %w", field, err)
	}
	return latest, nil
}

// Recommendation produces the single-day irrigation decision.
func (uc *IrrigationUseCase) Recommendation(ctx context.Context, crop string, moisture *float64, field string) (models.IrrigationDecision, error) {
	value, err := uc.resolveMoisture(ctx, moisture, field)
	if err != nil {
		return models.IrrigationDecision{}, err
	}
	return uc.engine.Recommendation(ctx, crop, value, nil)
}

// Schedule produces the 7-day simulated schedule.
func (uc *IrrigationUseCase) Schedule(ctx context.Context, crop string, moisture *float64, field string) (*models.WeeklySchedule, error) {
	value, err := uc.resolveMoisture(ctx, moisture, field)
	if err != nil {
		return nil, err
	}
	days, err := uc.sim.WeeklySchedule(ctx, crop, value)
	if err != nil {
		return nil, err
	}
	return &models.WeeklySchedule{
		Crop:        crop,
		GeneratedAt: uc.now(),
		Days:        days,
	}, nil
}

// TipsResult pairs the crop's watering tips with whether right now is a
// good moment to irrigate.
type TipsResult struct {
	Crop     string   `json:"crop"`
	Tips     []string `json:"tips"`
	IdealNow bool     `json:"idealNow"`
}

// Tips returns watering advice for a crop. The ideal-window flag degrades
// to false when weather is unavailable rather than failing the call.
func (uc *IrrigationUseCase) Tips(ctx context.Context, crop string) (*TipsResult, error) {
	tips, err := uc.engine.Tips(crop)
	if err != nil {
		return nil, err
	}
	res := &TipsResult{Crop: crop, Tips: tips}
	snap, werr := uc.weather.Current(ctx)
	if werr != nil {
		uc.logger.Warn("weather unavailable for ideal-window check", logger.Error(werr))
		return res, nil
	}
	res.IdealNow = irrigation.IdealIrrigationWindow(snap, uc.now().Hour())
	return res, nil
}
