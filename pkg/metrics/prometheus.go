package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	readingsStored *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastMoisture   *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		readingsStored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agripulse_readings_stored_total",
				Help: "Total number of soil readings written to a backend",
			},
			[]string{"backend", "field"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agripulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastMoisture: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "agripulse_soil_moisture_percent",
				Help: "Last recorded soil moisture for a field",
			},
			[]string{"field"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agripulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordReadingStored records a soil reading written to a backend.
func (r *Recorder) RecordReadingStored(backend, field string) {
	r.readingsStored.WithLabelValues(backend, field).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastMoisture records the last moisture percentage for a field.
func (r *Recorder) RecordLastMoisture(field string, pct float64) {
	r.lastMoisture.WithLabelValues(field).Set(pct)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
