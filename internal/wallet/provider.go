// Package wallet defines the account provider the session talks to and ships a local keyring-backed one.
//
// The request surface follows EIP-1193: callers send a method name and params, failures carry a
// numeric provider code through ErrorCode, and account and chain changes are delivered as events.
package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/quantumauth-io/credential-minter/internal/chains"
)

// EIP-1193 and JSON-RPC error codes.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnsupportedMethod = 4200
	CodeUnrecognizedChain = 4902
	CodeInvalidParams     = -32602
	CodeRequestPending    = -32002
	CodeInternal          = -32603
)

type Provider interface {
	// Request performs method and decodes its result into result, which may be nil.
	Request(ctx context.Context, result any, method string, params ...any) error

	// Backend is the node connection for the currently selected chain.
	Backend() chains.Backend

	// Signer returns transact options that sign as account. The account must have been granted.
	Signer(account common.Address, chainID *big.Int) (*bind.TransactOpts, error)

	SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription
	SubscribeChainChanged(ch chan<- string) event.Subscription
}

// ProviderError is a request failure with its provider code. It satisfies go-ethereum's rpc.Error.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

func (e *ProviderError) ErrorCode() int { return e.Code }

func providerErr(code int, format string, args ...any) *ProviderError {
	return &ProviderError{Code: code, Message: fmt.Sprintf(format, args...)}
}
