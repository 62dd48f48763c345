// Copyright (c) 2026 Fithub. All rights reserved.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fithub/fithub/internal/platform/constants"
)

// # Prometheus Instrumentation

// Metrics holds the HTTP-level Prometheus collectors for the API server.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// NewMetrics registers and returns the HTTP metric collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		requestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
	}
}

// Instrument records request counts and latencies for every request.
//
// # Cardinality
//
// The path label uses the chi route pattern (e.g. "/api/v1/plans/{planID}")
// rather than the raw URL, so IDs never explode the label space.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		next.ServeHTTP(wrappedWriter, request)

		routePattern := chi.RouteContext(request.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unmatched"
		}

		m.requestsTotal.WithLabelValues(
			request.Method,
			routePattern,
			strconv.Itoa(wrappedWriter.status),
		).Inc()
		m.requestDuration.WithLabelValues(request.Method, routePattern).
			Observe(time.Since(startTime).Seconds())
	})
}

// MetricsHandler returns the Prometheus scrape endpoint handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
