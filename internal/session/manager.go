// Package session owns the wallet connection, the signing handle and the credential contract handle,
// and exposes the credential operations on top of them.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/credential-minter/internal/chains"
	"github.com/quantumauth-io/credential-minter/internal/metrics"
	"github.com/quantumauth-io/credential-minter/internal/notifier"
	"github.com/quantumauth-io/credential-minter/internal/txtracker"
	"github.com/quantumauth-io/credential-minter/internal/validate"
	"github.com/quantumauth-io/credential-minter/internal/wallet"
)

type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

type ChangeReason string

const (
	ChangeAccount    ChangeReason = "account"
	ChangeDisconnect ChangeReason = "disconnect"
	ChangeChain      ChangeReason = "chain"
)

// WalletChange is delivered to OnWalletChange listeners.
type WalletChange struct {
	Reason  ChangeReason `json:"reason"`
	Account string       `json:"account"`
	ChainID string       `json:"chainId,omitempty"`
}

// Reloader drops chain-dependent state after the wallet switched networks.
type Reloader func(ctx context.Context, chainID string)

type Manager struct {
	contractAddress string
	provider        wallet.Provider
	tracker         *txtracker.Tracker
	newContract     ContractFactory
	reload          Reloader

	// initMu serializes connection attempts
	initMu sync.Mutex

	mu       sync.RWMutex
	state    State
	backend  chains.Backend
	signer   *bind.TransactOpts
	contract Contract
	account  string
	chainID  string

	changes *notifier.Notifier[WalletChange]
}

type Option func(*Manager)

func WithProvider(p wallet.Provider) Option {
	return func(m *Manager) { m.provider = p }
}

func WithTracker(t *txtracker.Tracker) Option {
	return func(m *Manager) {
		if t != nil {
			m.tracker = t
		}
	}
}

func WithContractFactory(f ContractFactory) Option {
	return func(m *Manager) {
		if f != nil {
			m.newContract = f
		}
	}
}

func WithReloader(r Reloader) Option {
	return func(m *Manager) {
		if r != nil {
			m.reload = r
		}
	}
}

// NewManager builds a disconnected session for the contract at contractAddress.
// Address problems surface on the first Init.
func NewManager(contractAddress string, opts ...Option) *Manager {
	m := &Manager{
		contractAddress: strings.TrimSpace(contractAddress),
		newContract:     BindContract,
	}
	m.reload = m.resetForChain
	m.changes = notifier.New[WalletChange](m.attachWalletHooks)
	for _, opt := range opts {
		opt(m)
	}
	if m.tracker == nil {
		m.tracker = txtracker.New()
	}
	return m
}

func (m *Manager) Tracker() *txtracker.Tracker { return m.tracker }

// Init connects the wallet and builds the contract handle. When already connected and not forced it
// returns the existing handle without asking the wallet again. Listeners are notified after the
// connection attempt is over, so they may call back into the Manager.
func (m *Manager) Init(ctx context.Context, forceReconnect bool) (Contract, error) {
	c, change, err := m.initLocked(ctx, forceReconnect)
	if change != nil {
		m.changes.Notify(*change)
	}
	return c, err
}

// initLocked runs one connection attempt under initMu and returns the change to announce.
func (m *Manager) initLocked(ctx context.Context, forceReconnect bool) (Contract, *WalletChange, error) {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	m.mu.RLock()
	if !forceReconnect && m.state == Connected && m.contract != nil && m.signer != nil {
		c := m.contract
		m.mu.RUnlock()
		return c, nil, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	m.state = Connecting
	m.mu.Unlock()

	c, change, err := m.connect(ctx)
	if err != nil {
		had := m.clear()
		metrics.SessionConnects.WithLabelValues("error").Inc()
		log.Warn("wallet connection failed", "error", err)
		if had {
			return nil, &WalletChange{Reason: ChangeDisconnect}, err
		}
		return nil, nil, err
	}
	metrics.SessionConnects.WithLabelValues("ok").Inc()
	return c, change, nil
}

func (m *Manager) connect(ctx context.Context) (Contract, *WalletChange, error) {
	if err := validate.ContractAddress(m.contractAddress); err != nil {
		return nil, nil, err
	}
	if m.provider == nil {
		return nil, nil, &validate.ValidationError{Field: "wallet", Reason: "no wallet provider available"}
	}

	var accounts []string
	if err := m.provider.Request(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, nil, classify("init", err)
	}
	if len(accounts) == 0 || strings.TrimSpace(accounts[0]) == "" {
		return nil, nil, &validate.ValidationError{Field: "accounts", Reason: "wallet returned no accounts"}
	}
	account := strings.ToLower(strings.TrimSpace(accounts[0]))
	if !common.IsHexAddress(account) {
		return nil, nil, &ContractError{Method: "init", Cause: errors.Newf("wallet returned malformed account %q", account)}
	}

	backend := m.provider.Backend()
	if backend == nil {
		return nil, nil, &ContractError{Method: "init", Kind: ErrConstruction, Cause: errors.New("wallet has no network connection")}
	}
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, nil, classify("init", errors.Wrap(err, "read chain id"))
	}
	signer, err := m.provider.Signer(common.HexToAddress(account), chainID)
	if err != nil {
		return nil, nil, classify("init", errors.Wrap(err, "signer"))
	}
	contract, err := m.newContract(common.HexToAddress(m.contractAddress), backend)
	if err != nil {
		return nil, nil, &ContractError{Method: "init", Kind: ErrConstruction, Cause: err}
	}

	m.mu.Lock()
	prev := m.account
	m.state = Connected
	m.backend = backend
	m.signer = signer
	m.contract = contract
	m.account = account
	m.chainID = hexutil.EncodeBig(chainID)
	m.mu.Unlock()

	log.Info("wallet connected", "account", account, "chain_id", chainID.String())

	if prev == account {
		return contract, nil, nil
	}
	return contract, &WalletChange{Reason: ChangeAccount, Account: account}, nil
}

// clear drops all session state and reports whether an account was connected.
func (m *Manager) clear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	had := m.account != ""
	m.state = Disconnected
	m.backend = nil
	m.signer = nil
	m.contract = nil
	m.account = ""
	m.chainID = ""
	return had
}

// Contract returns the current handle, or a not-connected error.
func (m *Manager) Contract() (Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != Connected || m.contract == nil {
		return nil, &ContractError{Method: "getContract", Kind: ErrNotConnected}
	}
	return m.contract, nil
}

// CurrentAccount is the connected account as lowercase hex, or "".
func (m *Manager) CurrentAccount() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.account
}

// ChainID is the connected network as 0x-prefixed hex, or "".
func (m *Manager) ChainID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chainID
}

func (m *Manager) IsWalletConnected() bool {
	return m.CurrentAccount() != ""
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Disconnect drops the session. Listeners hear about it if an account was connected.
func (m *Manager) Disconnect() {
	if m.clear() {
		log.Info("wallet disconnected")
		m.changes.Notify(WalletChange{Reason: ChangeDisconnect})
	}
}

// OnWalletChange registers fn for account and network changes and returns its unsubscribe function.
// Wallet event hooks are attached with the first listener and detached with the last.
func (m *Manager) OnWalletChange(fn func(WalletChange)) (unsubscribe func()) {
	return m.changes.Subscribe(fn)
}

// Close detaches wallet hooks and drops every listener.
func (m *Manager) Close() {
	m.changes.Close()
}

// live returns the handles an operation needs, or a not-connected error for method.
func (m *Manager) live(method string) (Contract, *bind.TransactOpts, chains.Backend, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != Connected || m.contract == nil || m.signer == nil {
		return nil, nil, nil, &ContractError{Method: method, Kind: ErrNotConnected}
	}
	return m.contract, m.signer, m.backend, nil
}

func (m *Manager) attachWalletHooks() (detach func()) {
	if m.provider == nil {
		return func() {}
	}

	accountsCh := make(chan []common.Address, 8)
	chainCh := make(chan string, 8)
	accountsSub := m.provider.SubscribeAccountsChanged(accountsCh)
	chainSub := m.provider.SubscribeChainChanged(chainCh)

	ctx, cancel := context.WithCancel(context.Background())
	go m.watchWallet(ctx, accountsCh, chainCh)
	log.Info("wallet hooks attached")

	return func() {
		cancel()
		accountsSub.Unsubscribe()
		chainSub.Unsubscribe()
		log.Info("wallet hooks detached")
	}
}

func (m *Manager) watchWallet(ctx context.Context, accountsCh <-chan []common.Address, chainCh <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case accounts := <-accountsCh:
			m.handleAccountsChanged(ctx, accounts)
		case chainID := <-chainCh:
			m.handleChainChanged(ctx, chainID)
		}
	}
}

func (m *Manager) handleAccountsChanged(ctx context.Context, accounts []common.Address) {
	metrics.SessionWalletEvents.WithLabelValues("accountsChanged").Inc()

	if len(accounts) == 0 {
		m.Disconnect()
		return
	}
	next := strings.ToLower(accounts[0].Hex())
	if next == m.CurrentAccount() {
		return
	}
	log.Info("wallet account changed, reconnecting", "account", next)
	if _, err := m.Init(ctx, true); err != nil {
		log.Warn("reconnect after account change failed", "error", err)
	}
}

// handleChainChanged reloads instead of reconciling: chain-bound handles and tracked
// transactions from the old network are dropped.
func (m *Manager) handleChainChanged(ctx context.Context, chainID string) {
	metrics.SessionWalletEvents.WithLabelValues("chainChanged").Inc()
	log.Info("wallet network changed, reloading session", "chain_id", chainID)

	m.reload(ctx, chainID)
	m.changes.Notify(WalletChange{Reason: ChangeChain, Account: m.CurrentAccount(), ChainID: chainID})
}

func (m *Manager) resetForChain(_ context.Context, _ string) {
	m.clear()
	m.tracker.Clear()
}
