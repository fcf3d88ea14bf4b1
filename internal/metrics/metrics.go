package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drop_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drop_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Store
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drop_store_operations_total",
			Help: "Message store operations by result",
		},
		[]string{"op", "result"},
	)

	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drop_store_latency_seconds",
			Help:    "Message store operation latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5},
		},
		[]string{"op"},
	)

	SchemaReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "drop_schema_ready",
			Help: "1 once the messages schema has been initialized",
		},
	)

	// Wall
	WallLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drop_wall_loads_total",
			Help: "Wall loads by outcome (stored, seeded, preview, offline, failed)",
		},
		[]string{"outcome"},
	)
)
