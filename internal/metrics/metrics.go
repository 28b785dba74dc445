// Package metrics defines and registers all custom Prometheus metrics for
// the card ledger service. It is the single source of truth for metric
// names, labels, and help strings; everything registers with the default
// registry at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cardledger"

// --- Transfer metrics ---

// TransfersTotal counts balance transfers that committed successfully.
var TransfersTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfers_total",
		Help:      "Total number of balance transfers applied.",
	},
)

// TransferErrorsTotal counts rejected or failed transfers.
// Label:
//   - reason: "invalid_amount", "different_owners", "not_owner",
//     "insufficient_funds", or "store"
var TransferErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfer_errors_total",
		Help:      "Total number of transfers rejected or failed, by reason.",
	},
	[]string{"reason"},
)

// TransferDuration measures the store-side duration of the atomic double
// balance update.
var TransferDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transfer_duration_seconds",
		Help:      "Duration of the transactional transfer write.",
		Buckets:   prometheus.DefBuckets,
	},
)

// --- Card metrics ---

// CardsCreatedTotal counts newly issued cards.
var CardsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cards_created_total",
		Help:      "Total number of cards issued.",
	},
)

// CardsStatusChangesTotal counts lifecycle transitions.
// Label:
//   - status: the status the card was set to ("ACTIVE", "BLOCKED", "LOCK_REQUEST")
var CardsStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cards_status_changes_total",
		Help:      "Total number of card status changes, by resulting status.",
	},
	[]string{"status"},
)

// --- Auth metrics ---

// AuthFailuresTotal counts failed authentication attempts.
// Label:
//   - reason: "unknown_user", "bad_password", or "throttled"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed logins, by reason.",
	},
	[]string{"reason"},
)
