package mandi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"AgriPulse/internal/domain/models"
	pkghttp "AgriPulse/pkg/http"
	"AgriPulse/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

type fakeSource struct {
	name   string
	points []models.PricePoint
	err    error
}

func (f fakeSource) Name() string { return f.name }
func (f fakeSource) Prices(ctx context.Context, crop string) ([]models.PricePoint, error) {
	return f.points, f.err
}

type recordingStore struct {
	stored map[string][]models.PricePoint
}

func (r *recordingStore) StorePrices(ctx context.Context, crop string, points []models.PricePoint) error {
	if r.stored == nil {
		r.stored = make(map[string][]models.PricePoint)
	}
	r.stored[crop] = points
	return nil
}

func (r *recordingStore) DailyPrices(ctx context.Context, crop string, n int) ([]models.PricePoint, error) {
	return r.stored[crop], nil
}

func TestProviderFallbackOrder(t *testing.T) {
	points := []models.PricePoint{{Date: "2025-07-01", Price: 1800}}
	p := NewProvider(testLogger(t), nil,
		fakeSource{name: "api", err: errors.New("down")},
		fakeSource{name: "store"}, // empty
		fakeSource{name: "sample", points: points},
	)

	got, err := p.HistoricalPrices(context.Background(), "tomato")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Price != 1800 {
		t.Fatalf("unexpected points: %+v", got)
	}
}

func TestProviderPersistsPrimarySource(t *testing.T) {
	store := &recordingStore{}
	points := []models.PricePoint{{Date: "2025-07-01", Price: 1800}}
	p := NewProvider(testLogger(t), store, fakeSource{name: "api", points: points})

	if _, err := p.HistoricalPrices(context.Background(), "tomato"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.stored["tomato"]) != 1 {
		t.Fatal("expected live prices written back to the store")
	}
}

func TestProviderSecondarySourceNotPersisted(t *testing.T) {
	store := &recordingStore{}
	p := NewProvider(testLogger(t), store,
		fakeSource{name: "api", err: errors.New("down")},
		fakeSource{name: "sample", points: []models.PricePoint{{Date: "2025-07-01", Price: 10}}},
	)

	if _, err := p.HistoricalPrices(context.Background(), "tomato"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.stored) != 0 {
		t.Fatal("sample prices must not be written back to the store")
	}
}

func TestProviderAllSourcesFail(t *testing.T) {
	p := NewProvider(testLogger(t), nil, fakeSource{name: "api", err: errors.New("down")})
	_, err := p.HistoricalPrices(context.Background(), "tomato")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestClientParsesAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filters[commodity]") != "Tomato" {
			http.Error(w, "unexpected commodity", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"records":[
			{"arrival_date":"02/07/2025","modal_price":"1850"},
			{"arrival_date":"01/07/2025","modal_price":"1800"},
			{"arrival_date":"03/07/2025","modal_price":"not-a-number"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "key", BaseURL: srv.URL}, pkghttp.NewClient(), nil)
	points, err := c.Prices(context.Background(), "tomato")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 parseable records, got %d", len(points))
	}
	if points[0].Date != "2025-07-01" || points[1].Date != "2025-07-02" {
		t.Fatalf("expected ascending ISO dates, got %+v", points)
	}
}

func TestClientRequiresKey(t *testing.T) {
	c := NewClient(Config{}, nil, nil)
	if _, err := c.Prices(context.Background(), "tomato"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestStaticSourceDeterministic(t *testing.T) {
	s := NewStaticSource()
	a, err := s.Prices(context.Background(), "tomato")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 30 {
		t.Fatalf("expected 30 days, got %d", len(a))
	}
	b, _ := s.Prices(context.Background(), "tomato")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected deterministic series, day %d differs", i)
		}
	}
	if _, err := s.Prices(context.Background(), "durian"); err == nil {
		t.Fatal("expected error for unknown crop")
	}
}
