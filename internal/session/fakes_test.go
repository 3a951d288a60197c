package session

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"

	"github.com/quantumauth-io/credential-minter/internal/chains"
	"github.com/quantumauth-io/credential-minter/internal/txtracker"
	"github.com/quantumauth-io/credential-minter/internal/wallet"
)

const (
	testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	accountA     = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	accountB     = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	testCID      = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

// fakeBackend only answers the calls the session and tracker make; everything else panics.
type fakeBackend struct {
	chains.Backend
	chainID int64
}

func (b *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(b.chainID), nil
}

func (b *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(10)}, nil
}

type countedSub struct {
	event.Subscription
	live *atomic.Int32
	once sync.Once
}

func (s *countedSub) Unsubscribe() {
	s.once.Do(func() { s.live.Add(-1) })
	s.Subscription.Unsubscribe()
}

type fakeProvider struct {
	mu         sync.Mutex
	accounts   []string
	requestErr error
	signerErr  error
	backend    chains.Backend
	requests   int

	accountsFeed event.Feed
	chainFeed    event.Feed
	accountSubs  atomic.Int32
	chainSubs    atomic.Int32
}

func newFakeProvider(accounts ...string) *fakeProvider {
	return &fakeProvider{accounts: accounts, backend: &fakeBackend{chainID: 31337}}
}

func (p *fakeProvider) Request(_ context.Context, result any, method string, _ ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if method != "eth_requestAccounts" {
		return &wallet.ProviderError{Code: wallet.CodeUnsupportedMethod, Message: method}
	}
	p.requests++
	if p.requestErr != nil {
		return p.requestErr
	}
	*(result.(*[]string)) = append([]string(nil), p.accounts...)
	return nil
}

func (p *fakeProvider) setAccounts(accounts ...string) {
	p.mu.Lock()
	p.accounts = accounts
	p.mu.Unlock()
}

func (p *fakeProvider) requestCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

func (p *fakeProvider) Backend() chains.Backend { return p.backend }

func (p *fakeProvider) Signer(account common.Address, _ *big.Int) (*bind.TransactOpts, error) {
	if p.signerErr != nil {
		return nil, p.signerErr
	}
	return &bind.TransactOpts{From: account}, nil
}

func (p *fakeProvider) SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription {
	p.accountSubs.Add(1)
	return &countedSub{Subscription: p.accountsFeed.Subscribe(ch), live: &p.accountSubs}
}

func (p *fakeProvider) SubscribeChainChanged(ch chan<- string) event.Subscription {
	p.chainSubs.Add(1)
	return &countedSub{Subscription: p.chainFeed.Subscribe(ch), live: &p.chainSubs}
}

type callEvent struct {
	start bool
	index int64
}

// fakeContract records calls and serves canned results.
type fakeContract struct {
	from common.Address

	mu          sync.Mutex
	nonce       uint64
	mintArgs    []string
	mintErr     error
	revokeErr   error
	getResult   []interface{}
	getErr      error
	balance     int64
	balanceErr  error
	indexErr    map[int64]error
	events      []callEvent
	inFlight    int
	maxInFlight int
	owner       common.Address
}

func (c *fakeContract) nextTx() *types.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nonce++
	to := common.HexToAddress(testContract)
	return types.NewTx(&types.LegacyTx{Nonce: c.nonce, To: &to, Gas: 100_000, GasPrice: big.NewInt(1), Value: big.NewInt(0)})
}

func (c *fakeContract) MintCredential(opts *bind.TransactOpts, to common.Address, title, description, issuer, ipfsHash string) (*types.Transaction, error) {
	c.mu.Lock()
	c.from = opts.From
	c.mintArgs = []string{strings.ToLower(to.Hex()), title, description, issuer, ipfsHash}
	err := c.mintErr
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.nextTx(), nil
}

func (c *fakeContract) GetCredential(*bind.CallOpts, *big.Int) ([]interface{}, error) {
	return c.getResult, c.getErr
}

func (c *fakeContract) RevokeCredential(opts *bind.TransactOpts, _ *big.Int, _ string) (*types.Transaction, error) {
	c.mu.Lock()
	c.from = opts.From
	err := c.revokeErr
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.nextTx(), nil
}

func (c *fakeContract) BalanceOf(*bind.CallOpts, common.Address) (*big.Int, error) {
	return big.NewInt(c.balance), c.balanceErr
}

func (c *fakeContract) TokenOfOwnerByIndex(_ *bind.CallOpts, _ common.Address, index *big.Int) (*big.Int, error) {
	i := index.Int64()

	c.mu.Lock()
	c.events = append(c.events, callEvent{start: true, index: i})
	c.inFlight++
	c.maxInFlight = max(c.maxInFlight, c.inFlight)
	err := c.indexErr[i]
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.events = append(c.events, callEvent{start: false, index: i})
		c.mu.Unlock()
	}()

	if err != nil {
		return nil, err
	}
	// token ids differ from indexes so ordering mistakes show
	return big.NewInt(1000 + i), nil
}

func (c *fakeContract) OwnerOf(*bind.CallOpts, *big.Int) (common.Address, error) {
	return c.owner, nil
}

func staticFactory(c Contract) (ContractFactory, *atomic.Int32) {
	var builds atomic.Int32
	return func(common.Address, chains.Backend) (Contract, error) {
		builds.Add(1)
		return c, nil
	}, &builds
}

// freshFactory builds a new fakeContract per connection so handle identity can be checked.
func freshFactory() ContractFactory {
	return func(common.Address, chains.Backend) (Contract, error) {
		return &fakeContract{}, nil
	}
}

func successWait(logs ...*types.Log) txtracker.WaitFunc {
	return func(_ context.Context, _ bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
		return &types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			TxHash:      tx.Hash(),
			BlockNumber: big.NewInt(9),
			GasUsed:     77_000,
			Logs:        logs,
		}, nil
	}
}

func revertedWait() txtracker.WaitFunc {
	return func(_ context.Context, _ bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
		return &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: tx.Hash(), BlockNumber: big.NewInt(9)}, nil
	}
}

// dataError mimics a node revert carrying ABI-encoded data.
type dataError struct {
	msg  string
	data string
}

func (e *dataError) Error() string          { return e.msg }
func (e *dataError) ErrorCode() int         { return 3 }
func (e *dataError) ErrorData() interface{} { return e.data }

var errBoom = errors.New("boom")
