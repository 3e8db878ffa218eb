package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestObserveUpstream(t *testing.T) {
	ok := UpstreamCalls.WithLabelValues("search", "unit", "ok")
	failed := UpstreamCalls.WithLabelValues("search", "unit", "error")
	beforeOK, beforeFailed := counterValue(t, ok), counterValue(t, failed)

	ObserveUpstream("search", "unit", time.Now(), nil)
	ObserveUpstream("search", "unit", time.Now(), errors.New("boom"))
	ObserveUpstream("search", "unit", time.Now(), errors.New("boom"))

	if got := counterValue(t, ok) - beforeOK; got != 1 {
		t.Errorf("expected 1 ok call, got %v", got)
	}
	if got := counterValue(t, failed) - beforeFailed; got != 2 {
		t.Errorf("expected 2 failed calls, got %v", got)
	}
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequests.WithLabelValues("/items/{id}", "GET", "418")
	before := counterValue(t, counter)

	for _, path := range []string{"/items/1", "/items/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	if got := counterValue(t, counter) - before; got != 2 {
		t.Errorf("expected 2 requests under one pattern, got %v", got)
	}
}
