// Package metrics defines and registers all custom Prometheus metrics for the
// storefront service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionRestoresTotal counts finished session restorations.
// Label:
//   - outcome: "restored", "anonymous", "rejected" or "store_error"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restorations, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: the role that logged in, or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by resulting role or failure.",
	},
	[]string{"result"},
)

// CompanyRefreshesTotal counts company-status refreshes run by the dispatcher.
// Label:
//   - result: "ok" or "error"
var CompanyRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "company_refreshes_total",
		Help:      "Total number of company-status refreshes, by result.",
	},
	[]string{"result"},
)

// RefreshQueueDepth tracks the refreshes waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RefreshQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_queue_depth",
		Help:      "Current number of refreshes pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts accepted cart mutations.
// Label:
//   - op: "add", "remove", "clear" or "checkout"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// CheckoutsTotal counts order placements issued during checkout, one per group.
// Label:
//   - result: "success" or "failure"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout order placements, by result.",
	},
	[]string{"result"},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard verdicts.
// Label:
//   - outcome: "wait", "allow", "redirect_login" or "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// BackendRequestDuration measures calls to the CarGoRent backend.
// Labels:
//   - op: "identity lookup", "authenticate", "register" or "place order"
//   - result: "ok" or "error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the CarGoRent backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op", "result"},
)
