package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session, transaction and storage counters.

var (
	// Wallet session
	SessionConnects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "credential_minter",
		Subsystem: "session",
		Name:      "connects_total",
		Help:      "Wallet connection attempts by outcome",
	}, []string{"outcome"})

	SessionWalletEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "credential_minter",
		Subsystem: "session",
		Name:      "wallet_events_total",
		Help:      "Wallet account/network change events received",
	}, []string{"event"})

	ContractCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "credential_minter",
		Subsystem: "session",
		Name:      "contract_calls_total",
		Help:      "Credential contract operations by method and outcome",
	}, []string{"method", "outcome"})

	// Transaction tracker
	TxTracked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "credential_minter",
		Subsystem: "txtracker",
		Name:      "transactions_total",
		Help:      "Tracked transactions by final status",
	}, []string{"status"})

	TxFinalityLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "credential_minter",
		Subsystem: "txtracker",
		Name:      "finality_seconds",
		Help:      "Time from submission to receipt",
		Buckets:   []float64{1, 2, 5, 10, 15, 30, 60, 120, 300},
	})

	TxEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "credential_minter",
		Subsystem: "txtracker",
		Name:      "evicted_total",
		Help:      "Status entries purged after exceeding the retention window",
	})

	// Content storage
	StorageRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "credential_minter",
		Subsystem: "ipfs",
		Name:      "requests_total",
		Help:      "Content storage requests by operation and outcome",
	}, []string{"op", "outcome"})

	StorageUploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "credential_minter",
		Subsystem: "ipfs",
		Name:      "upload_bytes_total",
		Help:      "Bytes uploaded to the pinning service",
	})
)

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
