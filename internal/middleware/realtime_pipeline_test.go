package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
)

type nopMetrics struct{}

func (nopMetrics) RecordReadingStored(backend, field string)  {}
func (nopMetrics) RecordError(kind string)                    {}
func (nopMetrics) RecordLastMoisture(field string, v float64) {}
func (nopMetrics) RecordLatency(op string, seconds float64)   {}

type countingProc struct {
	calls int
	err   error
}

func (c *countingProc) Process(ctx context.Context, r *models.SoilReading) error {
	c.calls++
	return c.err
}

func reading(field string, moisture float64) *models.SoilReading {
	return &models.SoilReading{Field: field, Crop: "tomato", Timestamp: time.Now().Unix(), Moisture: moisture}
}

func TestPipelineRejectsInvalidReadings(t *testing.T) {
	proc := &countingProc{}
	p := NewRealtimePipeline(proc, nopMetrics{})

	if err := p.Process(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil reading")
	}
	if err := p.Process(context.Background(), reading("", 50)); err == nil {
		t.Fatal("expected error for empty field")
	}
	if err := p.Process(context.Background(), reading("f1", 120)); err == nil {
		t.Fatal("expected error for moisture above 100")
	}
	if err := p.Process(context.Background(), reading("f1", -1)); err == nil {
		t.Fatal("expected error for negative moisture")
	}
	if proc.calls != 0 {
		t.Fatalf("invalid readings must not reach downstream, got %d calls", proc.calls)
	}
}

func TestPipelineThrottlesPerField(t *testing.T) {
	proc := &countingProc{}
	p := NewRealtimePipeline(proc, nopMetrics{}, WithMaxRPS(1))

	for i := 0; i < 5; i++ {
		if err := p.Process(context.Background(), reading("f1", 50)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// First reading passes, the burst is dropped silently.
	if proc.calls != 1 {
		t.Fatalf("expected 1 downstream call under throttle, got %d", proc.calls)
	}

	// A different field has its own budget.
	if err := p.Process(context.Background(), reading("f2", 50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.calls != 2 {
		t.Fatalf("expected second field to pass, got %d calls", proc.calls)
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &countingProc{err: errors.New("storage down")}
	p := NewRealtimePipeline(proc, nopMetrics{}, WithBufferSize(4))

	if err := p.Process(context.Background(), reading("f1", 50)); err == nil {
		t.Fatal("expected downstream error surfaced")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("expected reading buffered, depth %d", len(p.bufCh))
	}
}

func TestPipelineTransformHook(t *testing.T) {
	proc := &countingProc{}
	p := NewRealtimePipeline(proc, nopMetrics{}, WithTransform(func(r *models.SoilReading) *models.SoilReading {
		r.Crop = "wheat"
		return r
	}))

	r := reading("f1", 50)
	if err := p.Process(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Crop != "wheat" {
		t.Fatalf("expected transform applied, got crop %q", r.Crop)
	}
}
