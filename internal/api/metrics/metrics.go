// Package metrics defines and registers all custom Prometheus metrics for the
// board service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "board"

// ── Auth pipeline metrics ─────────────────────────────────────────────────────

// RenewalsTotal counts renewal subprotocol outcomes.
// Label:
//   - result: "renewed", "missing_refresh", "invalid_refresh", "revoked",
//     "mismatch", "resolver_failed", "store_failed", "panic"
var RenewalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_renewals_total",
		Help:      "Total number of access-token renewal attempts, by outcome.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests whose access token failed validation in
// the access middleware.
// Label:
//   - reason: "expired", "malformed", "unknown_subject"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of access-token validation failures, by reason.",
	},
	[]string{"reason"},
)

// SecurityEventsTotal counts audit-worthy observations from the renewal
// pipeline.
// Label:
//   - kind: "renewal_mismatch", "renewal_revoked", "renewed"
var SecurityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "security_events_total",
		Help:      "Total number of security events emitted by the auth pipeline.",
	},
	[]string{"kind"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
