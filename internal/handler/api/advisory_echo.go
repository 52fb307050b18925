package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	models "AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	"AgriPulse/internal/service/metrics"
	"AgriPulse/internal/services/agriyield"
	"AgriPulse/internal/services/carbon"
	"AgriPulse/internal/services/classifier"
	"AgriPulse/internal/services/irrigation"
	"AgriPulse/internal/services/weather"
	"AgriPulse/internal/usecase"
	xhttp "AgriPulse/pkg/http"
	xlogger "AgriPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AdvisoryEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type AdvisoryEchoHandler struct {
	logger     *xlogger.Logger
	forecast   *usecase.ForecastUseCase
	weather    *usecase.WeatherUseCase
	irrigation *usecase.IrrigationUseCase
	dashboard  *usecase.DashboardUseCase
	carbon     *carbon.Estimator
	yield      *agriyield.Estimator
	classifier *classifier.Client
}

func NewAdvisoryEchoHandler(
	logger *xlogger.Logger,
	forecast *usecase.ForecastUseCase,
	weather *usecase.WeatherUseCase,
	irrigation *usecase.IrrigationUseCase,
	dashboard *usecase.DashboardUseCase,
	carbonEst *carbon.Estimator,
	yieldEst *agriyield.Estimator,
	pest *classifier.Client,
) *AdvisoryEchoHandler {
	metrics.Register()
	return &AdvisoryEchoHandler{
		logger:     logger,
		forecast:   forecast,
		weather:    weather,
		irrigation: irrigation,
		dashboard:  dashboard,
		carbon:     carbonEst,
		yield:      yieldEst,
		classifier: pest,
	}
}

func (h *AdvisoryEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/weather", h.Weather)
	g.GET("/market/forecast", h.MarketForecast)
	g.GET("/market/prices", h.PriceHistory)
	g.GET("/irrigation/recommendation", h.IrrigationRecommendation)
	g.GET("/irrigation/schedule", h.IrrigationSchedule)
	g.GET("/irrigation/tips", h.IrrigationTips)
	g.POST("/carbon/estimate", h.CarbonEstimate)
	g.POST("/yield/estimate", h.YieldEstimate)
	g.POST("/pest/classify", h.PestClassify)
}

func (h *AdvisoryEchoHandler) observe(endpoint string, start time.Time) {
	metrics.AdvisoryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// advisoryError lifts typed domain errors into AppErrors so they render
// with the right status instead of the generic 500 fallback.
func advisoryError(err error) error {
	var unknownCrop *irrigation.UnknownCropError
	if errors.As(err, &unknownCrop) {
		return xhttp.BadRequestError(unknownCrop.Error())
	}
	if errors.Is(err, weather.ErrUnavailable) {
		return xhttp.NewAppError("ERR_WEATHER_UNAVAILABLE", "", "schedule unavailable", http.StatusServiceUnavailable)
	}
	return err
}

func (h *AdvisoryEchoHandler) Dashboard(c echo.Context) error {
	defer h.observe("dashboard", time.Now())
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dashboard.GetDashboard(c.Request().Context(), usecase.GetDashboardParams{
		Crop:     req.Crop,
		Moisture: req.Moisture,
		Field:    req.Field,
	})
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("dashboard").Inc()
		h.logger.Error("dashboard usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, advisoryError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisoryEchoHandler) Weather(c echo.Context) error {
	defer h.observe("weather", time.Now())
	snap, err := h.weather.Current(c.Request().Context())
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("weather").Inc()
		h.logger.Error("weather usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, advisoryError(err))
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *AdvisoryEchoHandler) MarketForecast(c echo.Context) error {
	defer h.observe("market_forecast", time.Now())
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	crop := string(domrepo.NormalizeCrop(req.Crop))

	res, err := h.forecast.MarketForecast(c.Request().Context(), crop)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("market_forecast").Inc()
		h.logger.Error("market forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, advisoryError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisoryEchoHandler) PriceHistory(c echo.Context) error {
	defer h.observe("price_history", time.Now())
	req := &models.PriceHistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	crop := string(domrepo.NormalizeCrop(req.Crop))

	points, err := h.forecast.PriceHistory(c.Request().Context(), crop, req.N)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("price_history").Inc()
		h.logger.Error("price history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, advisoryError(err))
	}
	return xhttp.ListResponse(c, points, int64(len(points)))
}

func (h *AdvisoryEchoHandler) IrrigationRecommendation(c echo.Context) error {
	defer h.observe("irrigation_recommendation", time.Now())
	req := &models.RecommendationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.irrigation.Recommendation(c.Request().Context(), req.Crop, req.Moisture, req.Field)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("irrigation_recommendation").Inc()
		h.logger.Error("irrigation recommendation error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, advisoryError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisoryEchoHandler) IrrigationSchedule(c echo.Context) error {
	defer h.observe("irrigation_schedule", time.Now())
	req := &models.ScheduleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.irrigation.Schedule(c.Request().Context(), req.Crop, &req.Moisture, "")
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("irrigation_schedule").Inc()
		h.logger.Error("irrigation schedule error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, advisoryError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisoryEchoHandler) IrrigationTips(c echo.Context) error {
	defer h.observe("irrigation_tips", time.Now())
	req := &models.TipsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.irrigation.Tips(c.Request().Context(), req.Crop)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("irrigation_tips").Inc()
		h.logger.Error("irrigation tips error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, advisoryError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// CarbonEstimateResult bundles the footprint with optional derived figures.
type CarbonEstimateResult struct {
	Footprint  models.CarbonFootprint      `json:"footprint"`
	PerHectare *models.CarbonFootprint     `json:"perHectare,omitempty"`
	Benchmark  *carbon.BenchmarkComparison `json:"benchmark,omitempty"`
}

func (h *AdvisoryEchoHandler) CarbonEstimate(c echo.Context) error {
	defer h.observe("carbon_estimate", time.Now())
	req := &models.CarbonRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	in := models.CarbonInputs{
		FertilizerUreaKg: req.FertilizerUreaKg,
		FertilizerDAPKg:  req.FertilizerDAPKg,
		TractorHours:     req.TractorHours,
		PumpHours:        req.PumpHours,
		FuelLiters:       req.FuelLiters,
		ElectricityKWh:   req.ElectricityKWh,
		FarmAreaHa:       req.FarmAreaHa,
	}
	res := CarbonEstimateResult{Footprint: h.carbon.Footprint(in)}
	if req.PerHectare {
		if perHa, ok := h.carbon.PerHectare(in); ok {
			res.PerHectare = &perHa
		}
	}
	if req.Crop != "" {
		cmp := h.carbon.CompareToBenchmark(res.Footprint.Total, req.Crop)
		res.Benchmark = &cmp
	}
	return xhttp.SuccessResponse(c, res)
}

// YieldEstimateResult pairs the estimate with the crop tip shown alongside it.
type YieldEstimateResult struct {
	Estimate models.YieldEstimate `json:"estimate"`
	Tip      string               `json:"tip,omitempty"`
}

func (h *AdvisoryEchoHandler) YieldEstimate(c echo.Context) error {
	defer h.observe("yield_estimate", time.Now())
	req := &models.YieldRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	est, err := h.yield.Estimate(req.Crop, req.Area, req.Unit)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("yield_estimate").Inc()
		h.logger.Warn("yield estimate rejected", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, err.Error())
	}
	res := YieldEstimateResult{Estimate: est}
	if tip, err := h.yield.Tip(req.Crop); err == nil {
		res.Tip = tip
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisoryEchoHandler) PestClassify(c echo.Context) error {
	defer h.observe("pest_classify", time.Now())
	req := &models.ClassifyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		return xhttp.BadRequestResponse(c, "image must be base64-encoded")
	}
	verdict, err := h.classifier.Classify(c.Request().Context(), image)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("pest_classify").Inc()
		h.logger.Warn("pest classify rejected", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, verdict)
}

// decodeImage accepts plain base64 or a data URL as produced by canvas.toDataURL.
func decodeImage(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); i >= 0 {
		s = s[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(s)
}
