// Package metrics defines and registers all custom Prometheus metrics for the
// auction API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register themselves with the default Prometheus registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auction"

// ── Auction metrics ───────────────────────────────────────────────────────────

// AuctionsCreatedTotal counts newly created listings.
// Label:
//   - auction_type: "normal", "flash", "reserved" or "private"
var AuctionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auctions_created_total",
		Help:      "Total number of auctions created, by auction type.",
	},
	[]string{"auction_type"},
)

// StatusTransitionsTotal counts lifecycle transitions that were persisted.
// Labels:
//   - from: source status
//   - to:   target status
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of auction status transitions applied.",
	},
	[]string{"from", "to"},
)

// ── Bid metrics ───────────────────────────────────────────────────────────────

// BidsAcceptedTotal counts bids that passed validation and were persisted.
var BidsAcceptedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_accepted_total",
		Help:      "Total number of bids accepted.",
	},
)

// BidsRejectedTotal counts bids that failed validation.
// Label:
//   - reason: "too_low", "invalid_state", "out_of_window", "not_found", "contention"
var BidsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_rejected_total",
		Help:      "Total number of bids rejected, by reason.",
	},
	[]string{"reason"},
)

// BidLockRetriesTotal counts the internal retries performed when two bids
// contend for the same auction lock.
var BidLockRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bid_lock_retries_total",
		Help:      "Total number of bid placements retried after lock contention.",
	},
)

// ── Deposit metrics ───────────────────────────────────────────────────────────

// DepositsReviewedTotal counts admin review decisions.
// Label:
//   - outcome: "confirmed" or "rejected"
var DepositsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposits_reviewed_total",
		Help:      "Total number of deposit reviews, by outcome.",
	},
	[]string{"outcome"},
)
