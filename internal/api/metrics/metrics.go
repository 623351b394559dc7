// Package metrics defines the Prometheus metrics of the shop API. All metrics
// are registered with the default registry through promauto when the package
// is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shop"

// Result label values shared by the counters below.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "rejected" (invalid or taken) or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts sessions closed through the API.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of sessions closed by logout.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// StockMovementsTotal counts stock adjustments.
// Labels:
//   - direction: "add", "remove" or "set"
//   - result: "success", "rejected" or "error"
var StockMovementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_movements_total",
		Help:      "Total number of stock adjustments, by direction and result.",
	},
	[]string{"direction", "result"},
)

// StockUnitsTotal sums the units moved by successful add/remove adjustments.
var StockUnitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_units_total",
		Help:      "Total number of stock units added or removed.",
	},
	[]string{"direction"},
)

// ReviewsTotal counts review submissions.
var ReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_total",
		Help:      "Total number of product reviews submitted, by result.",
	},
	[]string{"result"},
)

// ProductChangesTotal counts catalog writes.
// Label:
//   - op: "create", "update", "deactivate", "reactivate" or "delete"
var ProductChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_changes_total",
		Help:      "Total number of successful catalog writes, by operation.",
	},
	[]string{"op"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route: the matched route template (e.g. "/api/products/:id")
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// Result maps an operation outcome onto the result label.
func Result(ok bool, err error) string {
	switch {
	case err != nil:
		return ResultError
	case ok:
		return ResultSuccess
	default:
		return ResultRejected
	}
}
