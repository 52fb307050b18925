package irrigation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"AgriPulse/internal/domain/models"
)

// Rand is the randomness source for the daily evapotranspiration draw.
// Tests inject a seeded source to pin the schedule.
type Rand interface {
	Float64() float64
}

// Simulator projects soil moisture forward over a week and asks the engine
// for a decision each day. Days are chained: day N's ending moisture is day
// N+1's starting moisture, so entries cannot be computed independently.
type Simulator struct {
	engine *Engine
	rng    Rand
	now    func() time.Time
}

// NewSimulator builds a simulator over an engine. A nil rng falls back to a
// time-seeded source.
func NewSimulator(engine *Engine, rng Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{engine: engine, rng: rng, now: time.Now}
}

// WeeklySchedule simulates the coming week starting from the current soil
// moisture. Unlike single-day recommendations there is no degraded mode
// here: a multi-day projection is meaningless without a rainfall forecast,
// so a weather failure is propagated.
func (s *Simulator) WeeklySchedule(ctx context.Context, crop string, soilMoisture float64) ([]models.ScheduleEntry, error) {
	if _, err := s.engine.Profile(crop); err != nil {
		return nil, err
	}
	snap, err := s.engine.weather.Forecast(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch weather forecast: %w", err)
	}
	if len(snap.Forecast) == 0 {
		return nil, fmt.Errorf("fetch weather forecast: empty forecast")
	}

	tun := s.engine.tun
	moisture := soilMoisture
	entries := make([]models.ScheduleEntry, 0, tun.ScheduleDays)
	for i := 0; i < tun.ScheduleDays; i++ {
		moisture -= tun.ETLossMinPct + s.rng.Float64()*(tun.ETLossMaxPct-tun.ETLossMinPct)
		if i < len(snap.Forecast) {
			moisture += snap.Forecast[i].RainfallMm * tun.RainAbsorption
		}
		// No floor clamp: the decision below sees the raw value.
		moisture = math.Min(moisture, 100)

		decision, derr := s.engine.Recommendation(ctx, crop, moisture, snap.Forecast)
		if derr != nil {
			return nil, derr
		}
		if decision.ShouldIrrigate {
			moisture = math.Min(moisture+tun.BoostPct, 100)
		}

		entries = append(entries, models.ScheduleEntry{
			Date:             s.scheduleDate(i),
			ShouldIrrigate:   decision.ShouldIrrigate,
			ExpectedMoisture: int(math.Round(moisture)),
			Reason:           decision.Reason,
		})
	}
	return entries, nil
}

func (s *Simulator) scheduleDate(offset int) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return s.now().AddDate(0, 0, offset).Format("Mon, Jan 2")
	}
}
