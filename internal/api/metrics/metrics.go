// Package metrics defines the custom Prometheus metrics of the back-office
// API. HTTP request metrics come from the echoprometheus middleware; the
// counters here cover business events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts successful logouts.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of bearer tokens revoked through logout.",
	},
)

// AuthRejectionsTotal counts requests refused by the bearer token gate.
// Label:
//   - reason: "missing", "malformed" or "invalid"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authentication gate.",
	},
	[]string{"reason"},
)

// EntityWritesTotal counts successful writes.
// Labels:
//   - entity: "user", "client" or "refund"
//   - action: "created", "updated" or "deleted"
var EntityWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_writes_total",
		Help:      "Total number of entity writes, by entity and action.",
	},
	[]string{"entity", "action"},
)

// RefundAmountTotal sums the amounts of created refunds.
// Label:
//   - status: the initial refund status
var RefundAmountTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refund_amount_total",
		Help:      "Sum of the amounts of created refunds.",
	},
	[]string{"status"},
)

// ReportsGeneratedTotal counts rendered workbooks.
// Label:
//   - kind: "refunds", "refunds_detailed" or "summary"
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of XLSX reports generated, by kind.",
	},
	[]string{"kind"},
)

// ReportSizeBytes tracks the size of rendered workbooks.
var ReportSizeBytes = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_size_bytes",
		Help:      "Size of generated XLSX reports.",
		Buckets:   prometheus.ExponentialBuckets(4096, 2, 10), // 4 KiB … 2 MiB
	},
	[]string{"kind"},
)
