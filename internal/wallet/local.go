package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/credential-minter/internal/chains"
)

// ApprovalFunc asks the user whether to expose accounts to the caller.
type ApprovalFunc func(ctx context.Context, accounts []common.Address) (bool, error)

// Networks switches the node connection by chain id and registers new chains.
type Networks interface {
	SwitchByChainIDHex(ctx context.Context, chainIDHex string) (chains.Backend, error)
	AddNetwork(n chains.NetworkConfig) (chains.NetworkConfig, error)
}

// SwitchChainParams is the wallet_switchEthereumChain parameter object.
type SwitchChainParams struct {
	ChainID string `json:"chainId"`
}

// AddChainParams is the wallet_addEthereumChain parameter object.
type AddChainParams struct {
	ChainID           string   `json:"chainId"`
	ChainName         string   `json:"chainName"`
	RPCURLs           []string `json:"rpcUrls"`
	BlockExplorerURLs []string `json:"blockExplorerUrls,omitempty"`
}

// LocalWallet is a Provider over a Keyring. Accounts are exposed only after approval.
type LocalWallet struct {
	keys     *Keyring
	networks Networks
	approve  ApprovalFunc

	mu        sync.RWMutex
	chainHex  string
	backend   chains.Backend
	selected  common.Address
	permitted bool

	pending atomic.Bool

	accountsFeed event.Feed
	chainFeed    event.Feed
}

type LocalOption func(*LocalWallet)

func WithApproval(fn ApprovalFunc) LocalOption {
	return func(w *LocalWallet) {
		if fn != nil {
			w.approve = fn
		}
	}
}

// NewLocalWallet connects to chainIDHex through networks. Without WithApproval every request is granted.
func NewLocalWallet(ctx context.Context, keys *Keyring, networks Networks, chainIDHex string, opts ...LocalOption) (*LocalWallet, error) {
	if keys == nil || networks == nil {
		return nil, errors.New("wallet: keyring and networks are required")
	}
	w := &LocalWallet{
		keys:     keys,
		networks: networks,
		approve:  func(context.Context, []common.Address) (bool, error) { return true, nil },
	}
	for _, opt := range opts {
		opt(w)
	}
	if addrs := keys.Addresses(); len(addrs) > 0 {
		w.selected = addrs[0]
	}

	chainIDHex = strings.ToLower(strings.TrimSpace(chainIDHex))
	backend, err := networks.SwitchByChainIDHex(ctx, chainIDHex)
	if err != nil {
		return nil, fmt.Errorf("wallet: connect %s: %w", chainIDHex, err)
	}
	w.chainHex = chainIDHex
	w.backend = backend
	return w, nil
}

func (w *LocalWallet) Request(ctx context.Context, result any, method string, params ...any) error {
	switch method {
	case "eth_requestAccounts":
		accounts, err := w.requestAccounts(ctx)
		if err != nil {
			return err
		}
		return assign(result, accounts)

	case "eth_accounts":
		return assign(result, w.exposedAccounts())

	case "eth_chainId":
		w.mu.RLock()
		id := w.chainHex
		w.mu.RUnlock()
		return assign(result, id)

	case "wallet_switchEthereumChain":
		var p SwitchChainParams
		if err := firstParam(params, &p); err != nil {
			return err
		}
		return w.switchChain(ctx, p.ChainID)

	case "wallet_addEthereumChain":
		var p AddChainParams
		if err := firstParam(params, &p); err != nil {
			return err
		}
		return w.addChain(ctx, p)

	default:
		return w.proxy(ctx, result, method, params...)
	}
}

func (w *LocalWallet) requestAccounts(ctx context.Context) ([]common.Address, error) {
	if accounts := w.exposedAccounts(); len(accounts) > 0 {
		return accounts, nil
	}
	if !w.pending.CompareAndSwap(false, true) {
		return nil, providerErr(CodeRequestPending, "request of type 'eth_requestAccounts' already pending")
	}
	defer w.pending.Store(false)

	available := w.keys.Addresses()
	if len(available) == 0 {
		return []common.Address{}, nil
	}

	ok, err := w.approve(ctx, available)
	if err != nil {
		return nil, providerErr(CodeInternal, "approval failed: %v", err)
	}
	if !ok {
		log.Info("account access declined")
		return nil, providerErr(CodeUserRejected, "user rejected the request")
	}

	w.mu.Lock()
	w.permitted = true
	if !w.keys.Has(w.selected) {
		w.selected = available[0]
	}
	selected := w.selected
	w.mu.Unlock()

	log.Info("account access granted", "account", selected.Hex())
	return []common.Address{selected}, nil
}

func (w *LocalWallet) exposedAccounts() []common.Address {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.permitted || w.selected == (common.Address{}) {
		return []common.Address{}
	}
	return []common.Address{w.selected}
}

// Accounts returns the keyring addresses and the selected one.
func (w *LocalWallet) Accounts() ([]common.Address, common.Address) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.keys.Addresses(), w.selected
}

// AddAccount imports privHex into the keyring, or generates a fresh key when privHex is empty.
func (w *LocalWallet) AddAccount(privHex string) (common.Address, error) {
	var (
		addr common.Address
		err  error
	)
	if strings.TrimSpace(privHex) == "" {
		addr, err = w.keys.Generate()
	} else {
		addr, err = w.keys.Import(privHex)
	}
	if err != nil {
		return common.Address{}, err
	}

	w.mu.Lock()
	if w.selected == (common.Address{}) {
		w.selected = addr
	}
	w.mu.Unlock()

	log.Info("wallet account added", "account", addr.Hex())
	return addr, nil
}

// SelectAccount makes addr the exposed account and emits accountsChanged when access is granted.
func (w *LocalWallet) SelectAccount(addr common.Address) error {
	if !w.keys.Has(addr) {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, addr.Hex())
	}

	w.mu.Lock()
	changed := w.selected != addr
	w.selected = addr
	emit := changed && w.permitted
	w.mu.Unlock()

	if emit {
		w.accountsFeed.Send([]common.Address{addr})
	}
	return nil
}

// Revoke withdraws account access and emits an empty accountsChanged.
func (w *LocalWallet) Revoke() {
	w.mu.Lock()
	was := w.permitted
	w.permitted = false
	w.mu.Unlock()

	if was {
		w.accountsFeed.Send([]common.Address{})
	}
}

func (w *LocalWallet) switchChain(ctx context.Context, chainIDHex string) error {
	chainIDHex = strings.ToLower(strings.TrimSpace(chainIDHex))
	if !strings.HasPrefix(chainIDHex, "0x") {
		return providerErr(CodeInvalidParams, "chainId must be a 0x-prefixed hex string")
	}

	w.mu.RLock()
	same := w.chainHex == chainIDHex
	w.mu.RUnlock()
	if same {
		return nil
	}

	backend, err := w.networks.SwitchByChainIDHex(ctx, chainIDHex)
	if errors.Is(err, chains.ErrUnknownNetwork) {
		return providerErr(CodeUnrecognizedChain, "Unrecognized chain ID %q. Try adding the chain using wallet_addEthereumChain first.", chainIDHex)
	}
	if err != nil {
		return providerErr(CodeInternal, "switch chain: %v", err)
	}

	w.mu.Lock()
	w.chainHex = chainIDHex
	w.backend = backend
	w.mu.Unlock()

	log.Info("wallet chain switched", "chain_id", chainIDHex)
	w.chainFeed.Send(chainIDHex)
	return nil
}

func (w *LocalWallet) addChain(ctx context.Context, p AddChainParams) error {
	if len(p.RPCURLs) == 0 {
		return providerErr(CodeInvalidParams, "rpcUrls must not be empty")
	}
	n := chains.NetworkConfig{
		Name:       p.ChainName,
		ChainIDHex: p.ChainID,
	}
	for i, u := range p.RPCURLs {
		n.RPCs = append(n.RPCs, chains.RPC{Name: fmt.Sprintf("rpc-%d", i), URL: u})
	}
	if len(p.BlockExplorerURLs) > 0 {
		n.Explorer = p.BlockExplorerURLs[0]
	}
	if _, err := w.networks.AddNetwork(n); err != nil {
		return providerErr(CodeInvalidParams, "add chain: %v", err)
	}
	return w.switchChain(ctx, p.ChainID)
}

func (w *LocalWallet) proxy(ctx context.Context, result any, method string, params ...any) error {
	w.mu.RLock()
	backend := w.backend
	w.mu.RUnlock()

	raw, ok := backend.(interface{ Client() *rpc.Client })
	if !ok || raw.Client() == nil {
		return providerErr(CodeUnsupportedMethod, "method %s is not supported", method)
	}
	return raw.Client().CallContext(ctx, result, method, params...)
}

func (w *LocalWallet) Backend() chains.Backend {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.backend
}

func (w *LocalWallet) Signer(account common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	w.mu.RLock()
	granted := w.permitted && w.selected == account
	w.mu.RUnlock()
	if !granted {
		return nil, providerErr(CodeUnauthorized, "account %s has not been authorized", account.Hex())
	}
	return w.keys.Transactor(account, chainID)
}

func (w *LocalWallet) SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription {
	return w.accountsFeed.Subscribe(ch)
}

func (w *LocalWallet) SubscribeChainChanged(ch chan<- string) event.Subscription {
	return w.chainFeed.Subscribe(ch)
}

// assign copies v into result through JSON, the same path an RPC response takes.
func assign(result, v any) error {
	if result == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, result)
}

func firstParam(params []any, into any) error {
	if len(params) == 0 {
		return providerErr(CodeInvalidParams, "missing params")
	}
	if err := assign(into, params[0]); err != nil {
		return providerErr(CodeInvalidParams, "invalid params: %v", err)
	}
	return nil
}
