package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal counts handled requests by method, route and status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests processed.",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration observes request latency by method and route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// RegistrationsTotal counts registration outcomes.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "user_registrations_total",
		Help: "Total number of registration attempts by outcome.",
	},
	[]string{"outcome"},
)

// AuthenticationsTotal counts authentication outcomes.
var AuthenticationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "user_authentications_total",
		Help: "Total number of authentication attempts by outcome.",
	},
	[]string{"outcome"},
)
