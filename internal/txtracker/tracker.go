// Package txtracker keeps an in-memory status record for every transaction the session submits.
package txtracker

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/credential-minter/internal/metrics"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// DefaultRetention is how long a status record survives before the next sweep drops it.
const DefaultRetention = time.Hour

// ErrReverted is returned by Track when the transaction was mined with a failed status.
var ErrReverted = errors.New("transaction reverted")

type TxStatus struct {
	Hash          common.Hash `json:"hash"`
	Status        Status      `json:"status"`
	Confirmations uint64      `json:"confirmations"`
	GasUsed       string      `json:"gasUsed,omitempty"`
	Error         string      `json:"error,omitempty"`
	BlockNumber   uint64      `json:"blockNumber,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// Backend is what the tracker needs from a chain connection.
type Backend interface {
	bind.DeployBackend
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// WaitFunc blocks until tx is mined.
type WaitFunc func(ctx context.Context, b bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error)

type Tracker struct {
	mu        sync.RWMutex
	entries   map[common.Hash]*TxStatus
	retention time.Duration
	wait      WaitFunc
	nowFn     func() time.Time
}

type Option func(*Tracker)

func WithRetention(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.retention = d
		}
	}
}

func WithWaitFunc(fn WaitFunc) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.wait = fn
		}
	}
}

func New(opts ...Option) *Tracker {
	t := &Tracker{
		entries:   make(map[common.Hash]*TxStatus),
		retention: DefaultRetention,
		wait:      bind.WaitMined,
		nowFn:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track records tx as pending, waits for finality and returns the receipt.
// A reverted receipt is returned together with ErrReverted.
func (t *Tracker) Track(ctx context.Context, backend Backend, tx *types.Transaction) (*types.Receipt, error) {
	if tx == nil {
		return nil, errors.New("txtracker: nil transaction")
	}
	if backend == nil {
		return nil, errors.New("txtracker: nil backend")
	}

	hash := tx.Hash()
	started := t.nowFn()

	t.mu.Lock()
	t.entries[hash] = &TxStatus{
		Hash:      hash,
		Status:    StatusPending,
		Timestamp: started,
	}
	t.mu.Unlock()

	log.Info("tracking transaction", "hash", hash.Hex())

	receipt, err := t.wait(ctx, backend, tx)
	if err != nil {
		t.fail(hash, err.Error())
		return nil, fmt.Errorf("wait for %s: %w", hash.Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		t.fail(hash, ErrReverted.Error())
		return receipt, ErrReverted
	}

	confirmations := uint64(1)
	if head, herr := backend.HeaderByNumber(ctx, nil); herr == nil && head != nil && receipt.BlockNumber != nil {
		if head.Number.Cmp(receipt.BlockNumber) >= 0 {
			confirmations = new(big.Int).Sub(head.Number, receipt.BlockNumber).Uint64() + 1
		}
	}

	t.mu.Lock()
	if e, ok := t.entries[hash]; ok && e.Status == StatusPending {
		e.Status = StatusConfirmed
		e.Confirmations = confirmations
		e.GasUsed = new(big.Int).SetUint64(receipt.GasUsed).String()
		if receipt.BlockNumber != nil {
			e.BlockNumber = receipt.BlockNumber.Uint64()
		}
	}
	evicted := t.sweepLocked()
	t.mu.Unlock()

	metrics.TxTracked.WithLabelValues(string(StatusConfirmed)).Inc()
	metrics.TxFinalityLatency.Observe(t.nowFn().Sub(started).Seconds())
	if evicted > 0 {
		metrics.TxEvicted.Add(float64(evicted))
	}

	log.Info("transaction confirmed",
		"hash", hash.Hex(),
		"block", receipt.BlockNumber,
		"gas_used", receipt.GasUsed,
		"confirmations", confirmations,
	)
	return receipt, nil
}

func (t *Tracker) fail(hash common.Hash, msg string) {
	if msg == "" {
		msg = "unknown error"
	}

	t.mu.Lock()
	if e, ok := t.entries[hash]; ok && e.Status == StatusPending {
		e.Status = StatusFailed
		e.Error = msg
	}
	t.mu.Unlock()

	metrics.TxTracked.WithLabelValues(string(StatusFailed)).Inc()
	log.Warn("transaction failed", "hash", hash.Hex(), "error", msg)
}

// sweepLocked drops records older than the retention window. Caller holds mu.
func (t *Tracker) sweepLocked() int {
	cutoff := t.nowFn().Add(-t.retention)
	n := 0
	for h, e := range t.entries {
		if e.Timestamp.Before(cutoff) {
			delete(t.entries, h)
			n++
		}
	}
	return n
}

// Status returns a copy of the record for hash.
func (t *Tracker) Status(hash common.Hash) (TxStatus, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[hash]
	if !ok {
		return TxStatus{}, false
	}
	return *e, true
}

// All returns every record, most recent first.
func (t *Tracker) All() []TxStatus {
	t.mu.RLock()
	out := make([]TxStatus, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[common.Hash]*TxStatus)
}
