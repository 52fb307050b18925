package classifier

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

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

func testImage(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, 2048)
}

func TestClassifyRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"label":"late_blight","confidence":0.91}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, APIKey: "test-key"}, pkghttp.NewClient(), nil, testLogger(t))
	diag, err := c.Classify(context.Background(), testImage(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Label != "late_blight" || diag.Confidence != 0.91 {
		t.Fatalf("unexpected diagnosis: %+v", diag)
	}
	if len(diag.Remedies) == 0 {
		t.Fatal("expected remedies attached to diagnosis")
	}
}

func TestClassifyFallsBackWhenRemoteFails(t *testing.T) {
	c := NewClient(Config{}, nil, nil, testLogger(t))

	img := testImage(2)
	first, err := c.Classify(context.Background(), img)
	if err != nil {
		t.Fatalf("expected sample fallback, got error: %v", err)
	}
	if first.Label == "" || first.Confidence <= 0 {
		t.Fatalf("unexpected sample diagnosis: %+v", first)
	}

	// Same image must get the same verdict.
	second, err := c.Classify(context.Background(), img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Label != second.Label || first.Confidence != second.Confidence {
		t.Fatalf("expected stable verdict per image, got %+v vs %+v", first, second)
	}
}

func TestClassifyRejectsTinyImage(t *testing.T) {
	c := NewClient(Config{}, nil, nil, testLogger(t))
	if _, err := c.Classify(context.Background(), []byte("tiny")); err == nil {
		t.Fatal("expected error for undersized image")
	}
}

func TestClassifyCachesVerdict(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"label":"rust","confidence":0.8}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL}, pkghttp.NewClient(), nil, testLogger(t))
	img := testImage(3)
	for i := 0; i < 3; i++ {
		if _, err := c.Classify(context.Background(), img); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 remote call for repeated image, got %d", calls)
	}
}
