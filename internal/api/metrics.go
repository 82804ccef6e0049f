package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_console_api_requests_total",
		Help: "Calls made to the remote API, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_console_api_request_duration_seconds",
		Help:    "Latency of calls made to the remote API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// outcome labels
const (
	outcomeOK      = "ok"
	outcomeRemote  = "remote_error"
	outcomeNetwork = "network_error"
)
