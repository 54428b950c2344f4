// Package metrics defines and registers all custom Prometheus metrics for
// the SecureAuth web client. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry at init time via promauto and are served on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "secureauth"

// LoginAttemptsTotal counts login submissions by result.
// Labels:
//   - result: "ok", "invalid_input", "invalid_credentials",
//     "identity_fetch_failed", "network_failure", "stale"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login form submissions, by result.",
	},
	[]string{"result"},
)

// RegisterAttemptsTotal counts registration submissions by result.
// Labels:
//   - result: "ok", "ok_no_session", "invalid_input", "rejected",
//     "network_failure", "stale"
var RegisterAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "register_attempts_total",
		Help:      "Total number of registration form submissions, by result.",
	},
	[]string{"result"},
)

// GatewayRequestsTotal counts calls against the remote auth gateway.
// Labels:
//   - operation: "login", "register", "me"
//   - outcome: "ok", "ok_no_session", "rejected", "identity_fetch_failed",
//     "network_failure", "error"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of requests issued to the remote auth gateway.",
	},
	[]string{"operation", "outcome"},
)

// GatewayRequestDuration measures remote call latency end-to-end.
// Label:
//   - operation: "login", "register", "me"
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of remote auth gateway calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SessionsEstablishedTotal counts sessions established (login or register).
var SessionsEstablishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_established_total",
		Help:      "Total number of sessions established.",
	},
)

// SessionsClearedTotal counts explicit logouts.
var SessionsClearedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_cleared_total",
		Help:      "Total number of sessions cleared by logout.",
	},
)

// ObserveGatewayRequest records one remote call's counter and latency.
func ObserveGatewayRequest(operation, outcome string, start time.Time) {
	GatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	GatewayRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
