// Package metrics defines and registers all custom Prometheus metrics for the
// storefront gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginNegotiationsTotal counts login negotiations by the terminal state they
// reach.
// Label:
//   - final_state: "redirecting", "form_error", "login_failed",
//     "provisioning_failed" or "connection_error"
var LoginNegotiationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_negotiations_total",
		Help:      "Total number of login negotiations, by terminal state.",
	},
	[]string{"final_state"},
)

// LoginProvisioningTotal counts auto-provisioning attempts triggered by an
// unknown account.
// Label:
//   - result: "created" or "failed"
var LoginProvisioningTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_provisioning_total",
		Help:      "Total number of automatic account provisioning attempts, by result.",
	},
	[]string{"result"},
)

// ── Conversion metrics ────────────────────────────────────────────────────────

// ConversionsTotal counts completed conversions.
// Label:
//   - kind: "identity" (no rate fetched), "direct" (one leg touches the
//     reference currency) or "pivoted" (both legs fetched)
var ConversionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversions_total",
		Help:      "Total number of successful currency conversions, by kind.",
	},
	[]string{"kind"},
)

// ConversionErrorsTotal counts conversions that failed.
// Label:
//   - reason: "invalid_input", "rate_unavailable" or "backend_unavailable"
var ConversionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversion_errors_total",
		Help:      "Total number of currency conversions that failed, by reason.",
	},
	[]string{"reason"},
)

// ConversionDuration measures end-to-end conversion latency, rate fetches
// included.
var ConversionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "conversion_duration_seconds",
		Help:      "Duration of a currency conversion including rate fetches.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── Storefront metrics ────────────────────────────────────────────────────────

// ContactMessagesTotal counts contact messages relayed to the backend.
var ContactMessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact messages relayed to the backend.",
	},
)

// PaymentsInitiatedTotal counts payment transactions started.
// Label:
//   - result: "redirected" or "failed"
var PaymentsInitiatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_initiated_total",
		Help:      "Total number of payment transactions initiated, by result.",
	},
	[]string{"result"},
)
