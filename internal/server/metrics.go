package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrforge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qrforge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Symbol generation metrics
	symbolsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrforge_symbols_generated_total",
			Help: "Total number of symbols generated",
		},
		[]string{"level", "format", "status"},
	)

	symbolVersions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qrforge_symbol_version",
			Help:    "Version of generated symbols",
			Buckets: []float64{1, 2, 3, 5, 10, 15, 20, 30, 40},
		},
	)

	generateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qrforge_generate_duration_seconds",
			Help:    "Encode plus render duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"format"},
	)

	// Rate limiting metrics
	rateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qrforge_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
	)
)
