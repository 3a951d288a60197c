package chains

import (
	"context"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/quantumauth-io/quantum-go-utils/retry"
)

// headCache answers latest-header queries from memory and refreshes the header in the background.
type headCache struct {
	Backend
	latest   atomic.Pointer[types.Header]
	received atomic.Pointer[time.Time]
}

func newHeadCache(ctx context.Context, backend Backend, every time.Duration) *headCache {
	hc := &headCache{Backend: backend}
	go hc.maintain(ctx, every)
	return hc
}

func (h *headCache) maintain(ctx context.Context, every time.Duration) {
	cfg := retry.DefaultConfig()
	cfg.MaxDelayBeforeRetrying = every
	cfg.InitialDelayBeforeRetrying = every / 10

	timer := time.NewTimer(every)
	defer timer.Stop()
	refreshes := 0
	for {
		select {
		case <-ctx.Done():
			log.Info("head refresher exiting", "refreshes", refreshes)
			return
		case <-timer.C:
			_, _ = retry.Retry(ctx, cfg,
				func(ctx context.Context) ([]interface{}, error) {
					refreshes++
					return nil, h.refresh(ctx)
				},
				nil,
				"refresh latest header")
			timer.Reset(every)
		}
	}
}

func (h *headCache) refresh(ctx context.Context) error {
	header, err := h.Backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "latest HeaderByNumber")
	}
	now := time.Now().UTC()
	h.latest.Store(header)
	h.received.Store(&now)
	return nil
}

func (h *headCache) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	if number != nil {
		return h.Backend.HeaderByNumber(ctx, number)
	}
	if cached := h.latest.Load(); cached != nil {
		return cached, nil
	}
	if err := h.refresh(ctx); err != nil {
		return nil, err
	}
	return h.latest.Load(), nil
}

// Client exposes the raw RPC client of the wrapped backend, if it has one.
func (h *headCache) Client() *rpc.Client {
	if c, ok := h.Backend.(interface{ Client() *rpc.Client }); ok {
		return c.Client()
	}
	return nil
}
