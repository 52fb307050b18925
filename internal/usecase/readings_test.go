package usecase

import (
	"context"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
)

func TestGetReadingsValidatesParams(t *testing.T) {
	uc := NewReadingsUseCase(&fakeStorage{})

	if _, err := uc.GetReadings(context.Background(), GetReadingsParams{}); err == nil {
		t.Fatal("expected error for missing field")
	}

	now := time.Now()
	_, err := uc.GetReadings(context.Background(), GetReadingsParams{
		Field: "field-a",
		From:  now,
		To:    now.Add(-time.Hour),
	})
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestGetReadingsReturnsRows(t *testing.T) {
	store := &fakeStorage{readings: []*models.SoilReading{
		{Field: "field-a", Crop: "tomato", Timestamp: 1750939200, Moisture: 42},
		{Field: "field-a", Crop: "tomato", Timestamp: 1750942800, Moisture: 41},
	}}
	uc := NewReadingsUseCase(store)

	now := time.Now()
	res, err := uc.GetReadings(context.Background(), GetReadingsParams{
		Field: "field-a",
		From:  now.Add(-time.Hour),
		To:    now,
	})
	if err != nil {
		t.Fatalf("GetReadings: %v", err)
	}
	if res.Count != 2 || len(res.Readings) != 2 {
		t.Fatalf("count = %d, rows = %d", res.Count, len(res.Readings))
	}
	if res.Field != "field-a" {
		t.Fatalf("field = %q", res.Field)
	}
}

func TestLatestMoistureRequiresField(t *testing.T) {
	uc := NewReadingsUseCase(&fakeStorage{latest: 37})

	if _, err := uc.LatestMoisture(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty field")
	}
	v, err := uc.LatestMoisture(context.Background(), "field-a")
	if err != nil {
		t.Fatalf("LatestMoisture: %v", err)
	}
	if v != 37 {
		t.Fatalf("moisture = %v, want 37", v)
	}
}
