package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterMetrics holds the counters the register backend exports.
type RegisterMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Scans     *prometheus.CounterVec
	Payments  *prometheus.CounterVec
}

// NewRegisterMetrics registers and returns the register metric set.
func NewRegisterMetrics() *RegisterMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "casier",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "casier",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	scans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "casier",
		Name:      "product_scans_total",
		Help:      "Total number of scan-code lookups by outcome.",
	}, []string{"outcome"})
	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "casier",
		Name:      "payments_total",
		Help:      "Total number of completed payments by method.",
	}, []string{"method"})

	prometheus.MustRegister(requests, latency, scans, payments)
	return &RegisterMetrics{
		Requests:  requests,
		LatencyMS: latency,
		Scans:     scans,
		Payments:  payments,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
