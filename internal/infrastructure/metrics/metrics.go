// Package metrics defines and registers the Prometheus metrics of the
// storefront catalog client. It is the single source of truth for metric
// names, labels and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; front ends that want them exported mount promhttp themselves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Catalog metrics ──────────────────────────────────────────────────────────

// CatalogRequestsTotal counts requests issued to the remote catalog.
// Labels:
//   - op: "list", "create", "update", "delete", "login", "signup"
//   - result: "ok", "rejected" (server error payload) or "network"
var CatalogRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Total number of requests issued to the remote catalog service.",
	},
	[]string{"op", "result"},
)

// CatalogRequestDuration measures round-trip time of remote requests.
var CatalogRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_request_duration_seconds",
		Help:      "Round-trip duration of requests to the remote catalog service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// CatalogRefusalsTotal counts mutations blocked locally by the authorization
// gate. No request is issued for these.
var CatalogRefusalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_refusals_total",
		Help:      "Total number of catalog mutations refused locally by role.",
	},
	[]string{"op"},
)

// CatalogStaleFetchesTotal counts fetch responses dropped because a newer
// fetch had been issued in the meantime.
var CatalogStaleFetchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_stale_fetches_total",
		Help:      "Total number of catalog fetch responses discarded as stale.",
	},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionDecodeFailuresTotal counts stored credentials whose claims could not
// be decoded and were downgraded to guest.
var SessionDecodeFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_decode_failures_total",
		Help:      "Total number of credentials that failed claim decoding.",
	},
)
