// Package metrics holds the prometheus collectors shared by the server components.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// Document store
	DocumentOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewroom_document_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"backend", "op", "result"},
	)

	DocumentOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewroom_document_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)

	// HTTP API
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewroom_http_requests_total",
			Help: "Total number of HTTP requests handled by the API",
		},
		[]string{"method", "operation", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewroom_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "operation"},
	)

	// Metadata search
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewroom_search_requests_total",
			Help: "Total number of metadata search calls by provider and outcome",
		},
		[]string{"provider", "result"},
	)

	// Sharing rooms
	RoomUnlocksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewroom_room_unlocks_total",
			Help: "Total number of room unlock attempts",
		},
		[]string{"result"},
	)
)

// Result maps an error to the result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObserveDocumentOp records one document store operation.
func ObserveDocumentOp(backend, op string, start time.Time, err error) {
	DocumentOpsTotal.WithLabelValues(backend, op, Result(err)).Inc()
	DocumentOpDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}

// ObserveHTTPRequest records one handled API request.
func ObserveHTTPRequest(method, operation string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, operation, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, operation).Observe(duration.Seconds())
}
