package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	models "AgriPulse/internal/domain/models"
	"AgriPulse/internal/services/irrigation"
	"AgriPulse/internal/services/weather"
	"AgriPulse/internal/usecase"
	xlogger "AgriPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubWeatherProvider struct {
	snap models.WeatherSnapshot
	err  error
}

func (s stubWeatherProvider) Forecast(ctx context.Context) (models.WeatherSnapshot, error) {
	return s.snap, s.err
}

type stubRand struct{ v float64 }

func (r stubRand) Float64() float64 { return r.v }

func newIrrigationTestServer(t *testing.T, wp stubWeatherProvider) *echo.Echo {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	engine := irrigation.NewEngine(wp, nil, irrigation.Tunables{})
	sim := irrigation.NewSimulator(engine, stubRand{0.5})
	uc := usecase.NewIrrigationUseCase(engine, sim, nil, nil, l)
	h := NewAdvisoryEchoHandler(l, nil, nil, uc, nil, nil, nil, nil)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

type errorEnvelope struct {
	Status int `json:"status"`
	Data   []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"data"`
}

func doGET(t *testing.T, e *echo.Echo, target string) errorEnvelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestRecommendationUnknownCropRendersBadRequest(t *testing.T) {
	e := newIrrigationTestServer(t, stubWeatherProvider{})

	env := doGET(t, e, "/api/irrigation/recommendation?crop=dragonfruit&moisture=50")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", env.Status)
	}
	if len(env.Data) == 0 || env.Data[0].Code != "ERR_BAD_REQUEST" {
		t.Fatalf("unexpected error payload: %+v", env.Data)
	}
}

func TestScheduleWithoutWeatherRendersServiceUnavailable(t *testing.T) {
	wp := stubWeatherProvider{err: fmt.Errorf("every source down: %w", weather.ErrUnavailable)}
	e := newIrrigationTestServer(t, wp)

	env := doGET(t, e, "/api/irrigation/schedule?crop=tomato&moisture=50")
	if env.Status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", env.Status)
	}
	if len(env.Data) == 0 || env.Data[0].Message != "schedule unavailable" {
		t.Fatalf("unexpected error payload: %+v", env.Data)
	}
}
