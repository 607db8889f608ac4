// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LocationsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locations_ingested_total",
			Help: "Total number of location points persisted",
		},
		[]string{"mode"}, // single, batch, import
	)

	AuditFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_failures_total",
			Help: "Total number of audit records that could not be written",
		},
		[]string{"action"},
	)

	RoutePoints = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "route_points",
			Help:    "Number of points in served routes before and after simplification",
			Buckets: []float64{1, 10, 50, 100, 200, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"stage"}, // window, rendered
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordIngest counts persisted points for an ingestion mode.
func RecordIngest(mode string, n int) {
	LocationsIngested.WithLabelValues(mode).Add(float64(n))
}

// RecordAuditFailure counts an audit record that was dropped.
func RecordAuditFailure(action string) {
	AuditFailures.WithLabelValues(action).Inc()
}

// RecordRoute observes the window size and rendered size of a route.
func RecordRoute(window, rendered int) {
	RoutePoints.WithLabelValues("window").Observe(float64(window))
	RoutePoints.WithLabelValues("rendered").Observe(float64(rendered))
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
