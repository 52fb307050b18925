package api

import (
	"encoding/json"
	"net/http"
	"time"

	icache "AgriPulse/internal/service/cache"
	"AgriPulse/internal/service/metrics"
	"AgriPulse/internal/service/ratelimit"
	"AgriPulse/internal/usecase"
	xhttp "AgriPulse/pkg/http"
	applogger "AgriPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Handlers registers several route groups behind a single xhttp.Handler.
type Handlers []xhttp.Handler

func (hs Handlers) RegisterRoutes(e *echo.Echo) {
	for _, h := range hs {
		h.RegisterRoutes(e)
	}
}

// ReadingsHandler serves raw soil reading queries backed by ClickHouse.
type ReadingsHandler struct {
	readings *usecase.ReadingsUseCase
	cache    icache.BytesCache
	rl       *ratelimit.Limiter
	l        *applogger.Logger
}

func NewReadingsHandler(readings *usecase.ReadingsUseCase) *ReadingsHandler {
	metrics.Register()
	return &ReadingsHandler{readings: readings, rl: ratelimit.New()}
}

func (h *ReadingsHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *ReadingsHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *ReadingsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/readings")
	g.GET("", h.Query)
	g.GET("/latest", h.Latest)
}

func (h *ReadingsHandler) Query(c echo.Context) error {
	start := time.Now()
	endpoint := "readings"
	defer func() { metrics.AdvisoryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	field := c.QueryParam("field")
	if field == "" {
		if h.l != nil {
			h.l.Warn("readings.query missing field")
		}
		return xhttp.BadRequestResponse(c, "field required")
	}
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 1000)
	now := time.Now().UTC()
	from := xhttp.ParseTimeDefault(c.QueryParam("from"), now.Add(-24*time.Hour))
	to := xhttp.ParseTimeDefault(c.QueryParam("to"), now)

	if !h.rl.Allow(c.RealIP()+":readings", 5, 2) {
		if h.l != nil {
			h.l.Warn("readings.query rate_limited", applogger.String("remote", c.RealIP()))
		}
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	cacheKey := "readings:" + field + ":" + from.Format(time.RFC3339) + ":" + to.Format(time.RFC3339)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			if h.l != nil {
				h.l.Warn("readings.query cache_get_error", applogger.Error(err))
			}
		} else if ok {
			if h.l != nil {
				h.l.Debug("readings.query cache_hit", applogger.String("key", cacheKey))
			}
			return c.JSONBlob(http.StatusOK, b)
		}
		if h.l != nil {
			h.l.Debug("readings.query cache_miss", applogger.String("key", cacheKey))
		}
	}

	res, err := h.readings.GetReadings(c.Request().Context(), usecase.GetReadingsParams{
		Field: field,
		From:  from,
		To:    to,
		Limit: limit,
	})
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues(endpoint).Inc()
		if h.l != nil {
			h.l.Error("readings.query error", applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}

	b, err := json.Marshal(res)
	if err != nil {
		if h.l != nil {
			h.l.Error("readings.query marshal_error", applogger.Error(err))
		}
		return xhttp.InternalServerErrorResponse(c)
	}
	if h.cache != nil {
		if err := h.cache.SetBytes(cacheKey, b, 15*time.Second); err != nil && h.l != nil {
			h.l.Warn("readings.query cache_set_error", applogger.Error(err))
		}
	}
	return c.JSONBlob(http.StatusOK, b)
}

func (h *ReadingsHandler) Latest(c echo.Context) error {
	start := time.Now()
	endpoint := "readings_latest"
	defer func() { metrics.AdvisoryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	field := c.QueryParam("field")
	if field == "" {
		if h.l != nil {
			h.l.Warn("readings.latest missing field")
		}
		return xhttp.BadRequestResponse(c, "field required")
	}
	if !h.rl.Allow(c.RealIP()+":latest", 10, 5) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	moisture, err := h.readings.LatestMoisture(c.Request().Context(), field)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues(endpoint).Inc()
		if h.l != nil {
			h.l.Error("readings.latest error", applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"field":    field,
		"moisture": moisture,
	})
}
