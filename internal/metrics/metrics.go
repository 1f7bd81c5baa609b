package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsTotal counts bridge transactions reaching a status, by type
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_transactions_total",
			Help: "Total number of bridge transactions by type and status",
		},
		[]string{"type", "status"},
	)

	// ReceiptsObserved counts source receipts by outcome (success, reverted)
	ReceiptsObserved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_receipts_observed_total",
			Help: "Total number of source chain receipts observed",
		},
		[]string{"outcome"},
	)

	// RelayerRequests counts relayer status queries by result (executed, pending, error)
	RelayerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_relayer_requests_total",
			Help: "Total number of relayer command status requests",
		},
		[]string{"result"},
	)

	// TrackedCommands is the size of the cross-chain tracking set
	TrackedCommands = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_tracked_commands",
			Help: "Number of cross-chain commands awaiting destination execution",
		},
	)

	// PendingHashes is the number of source hashes awaiting a receipt
	PendingHashes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_pending_hashes",
			Help: "Number of source transaction hashes awaiting confirmation",
		},
	)

	// CompletionDuration tracks time from submission to completion
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_completion_duration_seconds",
			Help:    "Time from submission to completion in seconds",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		},
		[]string{"type"},
	)

	// ErrorsTotal counts errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_errors_total",
			Help: "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)
)
