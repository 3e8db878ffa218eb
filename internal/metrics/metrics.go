// Package metrics holds the Prometheus collectors shared by the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solace_upstream_calls_total",
		Help: "Outbound calls to model and search providers by outcome.",
	}, []string{"service", "provider", "outcome"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solace_upstream_call_seconds",
		Help:    "Latency of outbound provider calls.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"service", "provider"})

	Extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solace_extraction_total",
		Help: "JSON extraction attempts by the strategy that succeeded (or \"failed\").",
	}, []string{"strategy"})

	Analyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solace_analyses_total",
		Help: "Completed analyses by kind and outcome.",
	}, []string{"kind", "outcome"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solace_http_requests_total",
		Help: "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "code"})
)

// ObserveUpstream records one provider call.
func ObserveUpstream(service, provider string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamCalls.WithLabelValues(service, provider, outcome).Inc()
	UpstreamLatency.WithLabelValues(service, provider).Observe(time.Since(started).Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware counts requests by chi route pattern so path parameters do not
// explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}
