// Package metrics defines the custom Prometheus metrics of the marketing API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry on package init; the router
// exposes them on /metrics next to the HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leads"

// ContactsCreatedTotal counts accepted public contact submissions.
var ContactsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contacts_created_total",
		Help:      "Total number of contact submissions accepted.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid_input" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GateDecisionsTotal counts access gate outcomes.
// Labels:
//   - rule: the rule that matched (e.g. "public", "api_key", "admin_surface")
//   - outcome: "allow", "unauthenticated", "invalid_token" or "forbidden"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by rule and outcome.",
	},
	[]string{"rule", "outcome"},
)

// RateLimitedTotal counts public submissions rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contacts_rate_limited_total",
		Help:      "Total number of contact submissions rejected by the rate limiter.",
	},
)
