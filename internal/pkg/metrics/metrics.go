// Package metrics exposes the Prometheus instrumentation used across the
// HTTP and realtime layers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campushub_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campushub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// WebSocketConnections tracks currently open realtime connections.
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campushub_websocket_connections",
			Help: "Number of open WebSocket connections.",
		},
	)

	// BroadcastsTotal counts realtime frames fanned out, by topic kind.
	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campushub_broadcasts_total",
			Help: "Total number of realtime frames published.",
		},
		[]string{"topic"},
	)

	// BroadcastDrops counts frames discarded because a client buffer was full.
	BroadcastDrops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campushub_broadcast_drops_total",
			Help: "Total number of realtime frames dropped on slow clients.",
		},
	)
)
