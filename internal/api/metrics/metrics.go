// Package metrics defines and registers the custom Prometheus metrics for
// the city reporter API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cityreporter"

// ReportsCreatedTotal counts newly created reports.
// Label:
//   - category: the report category (e.g. "ROAD_DAMAGE")
var ReportsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_created_total",
		Help:      "Total number of reports created, by category.",
	},
	[]string{"category"},
)

// StatusTransitionsTotal counts report status writes.
// Labels:
//   - from: the status before the write
//   - to: the status after the write
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of report status updates, by from/to status.",
	},
	[]string{"from", "to"},
)

// PointsAwardedTotal accumulates points granted to users.
// Label:
//   - reason: "creation" or "resolution"
var PointsAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "Total points awarded to report owners, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "inactive"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts report submissions rejected by the daily limit.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of report submissions rejected by the rate limiter.",
	},
)
