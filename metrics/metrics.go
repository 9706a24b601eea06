package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FileServedTotal counts the responses produced by file handlers by status
	FileServedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pages_gateway_file_served_total",
		Help: "The number of responses produced by file handlers",
	}, []string{"status"})

	// FileCacheRequests counts hits and misses of the per-file content cache
	FileCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pages_gateway_file_cache_requests_total",
		Help: "The number of file cache lookups by result",
	}, []string{"result"})

	// FileSize is the size of the files read from disk
	FileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pages_gateway_file_size_bytes",
		Help:    "The size in bytes of the files read from disk",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// FSOperations counts the file system operations by name, operation and success
	FSOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pages_gateway_fs_operations_total",
		Help: "The number of file system operations",
	}, []string{"fs_name", "operation", "success"})

	// StaticNotFound counts static requests that did not resolve to a regular file
	StaticNotFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pages_gateway_static_not_found_total",
		Help: "The number of static directory requests that resolved to no regular file",
	})

	// RejectedRequestsCount counts requests rejected for using an unknown method
	RejectedRequestsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pages_gateway_unknown_method_rejected_requests",
		Help: "The number of requests with unknown HTTP method which were rejected",
	})

	// LimitListenerMaxConns is the maximum number of connections the listeners accept at once
	LimitListenerMaxConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pages_gateway_limit_listener_max_conns",
		Help: "The maximum number of simultaneous connections accepted by the listeners",
	})

	// LimitListenerConcurrentConns is the number of connections being served
	LimitListenerConcurrentConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pages_gateway_limit_listener_concurrent_conns",
		Help: "The number of connections currently being served",
	})

	// LimitListenerWaitingConns is the number of connections waiting for a free slot
	LimitListenerWaitingConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pages_gateway_limit_listener_waiting_conns",
		Help: "The number of connections waiting for a free slot",
	})
)

// MustRegister collectors with the Prometheus client
func MustRegister() {
	prometheus.MustRegister(
		FileServedTotal,
		FileCacheRequests,
		FileSize,
		FSOperations,
		StaticNotFound,
		RejectedRequestsCount,
		LimitListenerMaxConns,
		LimitListenerConcurrentConns,
		LimitListenerWaitingConns,
	)
}
