// Package metrics defines the custom Prometheus metrics of the store API.
// Every collector is registered with the default registry at package init
// through promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "playverse"

// ── Access control ───────────────────────────────────────────────────────────

// AccessDecisionsTotal counts gate decisions.
// Labels:
//   - stage: the stage that denied ("authentication", "admin", "client"), or "none"
//   - result: "allow" or "deny"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of access policy decisions, by denying stage and result.",
	},
	[]string{"stage", "result"},
)

// ── Accounts ─────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// ── Password reset ───────────────────────────────────────────────────────────

var ResetRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_reset_requests_total",
		Help:      "Total number of password reset requests, by result.",
	},
	[]string{"result"},
)

// ResetConsumesTotal counts reset link uses, both opening the link and
// submitting the new password.
// Label:
//   - result: "success", "not_found", "expired", "already_used", "invalid" or "error"
var ResetConsumesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_reset_confirmations_total",
		Help:      "Total number of password reset link uses, by result.",
	},
	[]string{"result"},
)

// ── Store ────────────────────────────────────────────────────────────────────

var CartItemsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_added_total",
		Help:      "Total number of add-to-cart actions.",
	},
)

var ReservationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "Total number of activity reservations created.",
	},
)
