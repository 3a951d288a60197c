package session

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/credential-minter/internal/chains"
	"github.com/quantumauth-io/credential-minter/internal/validate"
	"github.com/quantumauth-io/credential-minter/internal/wallet"
)

type changeLog struct {
	mu      sync.Mutex
	changes []WalletChange
}

func (l *changeLog) record(c WalletChange) {
	l.mu.Lock()
	l.changes = append(l.changes, c)
	l.mu.Unlock()
}

func (l *changeLog) snapshot() []WalletChange {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]WalletChange(nil), l.changes...)
}

func TestInit_ReturnsSameHandleUntilForced(t *testing.T) {
	p := newFakeProvider(accountA)
	m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
	ctx := context.Background()

	first, err := m.Init(ctx, false)
	require.NoError(t, err)
	second, err := m.Init(ctx, false)
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, p.requestCount())
	require.Equal(t, Connected, m.State())
	require.Equal(t, strings.ToLower(accountA), m.CurrentAccount())
	require.True(t, m.IsWalletConnected())
	require.Equal(t, "0x7a69", m.ChainID())

	third, err := m.Init(ctx, true)
	require.NoError(t, err)
	require.NotSame(t, first, third)
	require.Equal(t, 2, p.requestCount())

	current, err := m.Contract()
	require.NoError(t, err)
	require.Same(t, third, current)
}

func TestInit_NotifiesOnlyWhenAccountChanges(t *testing.T) {
	p := newFakeProvider(accountA)
	m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
	defer m.Close()

	var log changeLog
	m.OnWalletChange(log.record)

	ctx := context.Background()
	_, err := m.Init(ctx, false)
	require.NoError(t, err)
	_, err = m.Init(ctx, true)
	require.NoError(t, err)

	p.setAccounts(accountB)
	_, err = m.Init(ctx, true)
	require.NoError(t, err)

	require.Equal(t, []WalletChange{
		{Reason: ChangeAccount, Account: strings.ToLower(accountA)},
		{Reason: ChangeAccount, Account: strings.ToLower(accountB)},
	}, log.snapshot())
}

func TestInit_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		address  string
		provider func() *fakeProvider
		check    func(t *testing.T, err error)
	}{
		{
			name:     "bad contract address",
			address:  "0x1234",
			provider: func() *fakeProvider { return newFakeProvider(accountA) },
			check: func(t *testing.T, err error) {
				var ve *validate.ValidationError
				require.ErrorAs(t, err, &ve)
				require.Equal(t, "contractAddress", ve.Field)
			},
		},
		{
			name:     "missing contract address",
			address:  "  ",
			provider: func() *fakeProvider { return newFakeProvider(accountA) },
			check: func(t *testing.T, err error) {
				var ve *validate.ValidationError
				require.ErrorAs(t, err, &ve)
				require.Equal(t, "contractAddress", ve.Field)
			},
		},
		{
			name:     "no accounts",
			address:  testContract,
			provider: func() *fakeProvider { return newFakeProvider() },
			check: func(t *testing.T, err error) {
				var ve *validate.ValidationError
				require.ErrorAs(t, err, &ve)
				require.Equal(t, "accounts", ve.Field)
			},
		},
		{
			name:    "user rejected",
			address: testContract,
			provider: func() *fakeProvider {
				p := newFakeProvider(accountA)
				p.requestErr = &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "User rejected the request."}
				return p
			},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrUserRejected)
			},
		},
		{
			name:    "request pending",
			address: testContract,
			provider: func() *fakeProvider {
				p := newFakeProvider(accountA)
				p.requestErr = &wallet.ProviderError{Code: wallet.CodeRequestPending, Message: "already pending"}
				return p
			},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrRequestPending)
			},
		},
		{
			name:    "internal rpc",
			address: testContract,
			provider: func() *fakeProvider {
				p := newFakeProvider(accountA)
				p.requestErr = &wallet.ProviderError{Code: wallet.CodeInternal, Message: "internal"}
				return p
			},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrInternalRPC)
			},
		},
		{
			name:    "no backend",
			address: testContract,
			provider: func() *fakeProvider {
				p := newFakeProvider(accountA)
				p.backend = nil
				return p
			},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrConstruction)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.address, WithProvider(tt.provider()), WithContractFactory(freshFactory()))
			_, err := m.Init(ctx, false)
			require.Error(t, err)
			tt.check(t, err)
			require.Equal(t, Disconnected, m.State())
			require.False(t, m.IsWalletConnected())
		})
	}
}

func TestInit_NoProvider(t *testing.T) {
	m := NewManager(testContract)
	_, err := m.Init(context.Background(), false)

	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "wallet", ve.Field)
}

func TestInit_FailureAfterConnectNotifiesDisconnect(t *testing.T) {
	p := newFakeProvider(accountA)
	m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
	defer m.Close()

	var log changeLog
	m.OnWalletChange(log.record)

	ctx := context.Background()
	_, err := m.Init(ctx, false)
	require.NoError(t, err)

	p.mu.Lock()
	p.requestErr = &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "no"}
	p.mu.Unlock()

	_, err = m.Init(ctx, true)
	require.ErrorIs(t, err, ErrUserRejected)

	_, err = m.Contract()
	require.ErrorIs(t, err, ErrNotConnected)

	changes := log.snapshot()
	require.Len(t, changes, 2)
	require.Equal(t, ChangeDisconnect, changes[1].Reason)
}

func TestOnWalletChange_HooksFollowListeners(t *testing.T) {
	p := newFakeProvider(accountA)
	m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))

	require.EqualValues(t, 0, p.accountSubs.Load())

	unsubA := m.OnWalletChange(func(WalletChange) {})
	unsubB := m.OnWalletChange(func(WalletChange) {})
	require.EqualValues(t, 1, p.accountSubs.Load())
	require.EqualValues(t, 1, p.chainSubs.Load())

	unsubA()
	unsubA()
	require.EqualValues(t, 1, p.accountSubs.Load())

	unsubB()
	require.EqualValues(t, 0, p.accountSubs.Load())
	require.EqualValues(t, 0, p.chainSubs.Load())

	m.OnWalletChange(func(WalletChange) {})
	require.EqualValues(t, 1, p.accountSubs.Load())
	m.Close()
	require.EqualValues(t, 0, p.accountSubs.Load())
}

func TestWalletEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("account switch reconnects", func(t *testing.T) {
		p := newFakeProvider(accountA)
		m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
		defer m.Close()

		var log changeLog
		m.OnWalletChange(log.record)
		_, err := m.Init(ctx, false)
		require.NoError(t, err)

		p.setAccounts(accountB)
		p.accountsFeed.Send([]common.Address{common.HexToAddress(accountB)})

		require.Eventually(t, func() bool {
			return m.CurrentAccount() == strings.ToLower(accountB)
		}, 2*time.Second, 10*time.Millisecond)
		require.Eventually(t, func() bool { return len(log.snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("same account is ignored", func(t *testing.T) {
		p := newFakeProvider(accountA)
		m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
		defer m.Close()

		m.OnWalletChange(func(WalletChange) {})
		_, err := m.Init(ctx, false)
		require.NoError(t, err)

		p.accountsFeed.Send([]common.Address{common.HexToAddress(accountA)})

		require.Never(t, func() bool { return p.requestCount() > 1 }, 200*time.Millisecond, 10*time.Millisecond)
		require.Equal(t, 1, p.requestCount())
	})

	t.Run("empty accounts disconnects", func(t *testing.T) {
		p := newFakeProvider(accountA)
		m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
		defer m.Close()

		var log changeLog
		m.OnWalletChange(log.record)
		_, err := m.Init(ctx, false)
		require.NoError(t, err)

		p.accountsFeed.Send([]common.Address{})

		require.Eventually(t, func() bool { return !m.IsWalletConnected() }, 2*time.Second, 10*time.Millisecond)
		require.Eventually(t, func() bool {
			changes := log.snapshot()
			return len(changes) == 2 && changes[1].Reason == ChangeDisconnect
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("chain change reloads", func(t *testing.T) {
		p := newFakeProvider(accountA)
		reloaded := make(chan string, 1)
		m := NewManager(testContract,
			WithProvider(p),
			WithContractFactory(freshFactory()),
			WithReloader(func(_ context.Context, chainID string) { reloaded <- chainID }),
		)
		defer m.Close()

		var log changeLog
		m.OnWalletChange(log.record)
		_, err := m.Init(ctx, false)
		require.NoError(t, err)

		p.chainFeed.Send("0xaa36a7")

		select {
		case id := <-reloaded:
			require.Equal(t, "0xaa36a7", id)
		case <-time.After(2 * time.Second):
			t.Fatal("reload not called")
		}
		require.Eventually(t, func() bool {
			changes := log.snapshot()
			return len(changes) == 2 && changes[1] == WalletChange{Reason: ChangeChain, Account: strings.ToLower(accountA), ChainID: "0xaa36a7"}
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func TestDefaultReloadClearsSession(t *testing.T) {
	p := newFakeProvider(accountA)
	m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))

	_, err := m.Init(context.Background(), false)
	require.NoError(t, err)

	m.resetForChain(context.Background(), "0x1")
	require.Equal(t, Disconnected, m.State())
	require.Empty(t, m.Tracker().All())
	_, err = m.Contract()
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestOperationsRequireConnection(t *testing.T) {
	m := NewManager(testContract, WithProvider(newFakeProvider(accountA)))
	ctx := context.Background()

	_, err := m.GetCredential(ctx, 1)
	require.ErrorIs(t, err, ErrNotConnected)
	_, err = m.TokensByOwner(ctx, accountA)
	require.ErrorIs(t, err, ErrNotConnected)
	_, err = m.RevokeCredential(ctx, 1, "expired")
	require.ErrorIs(t, err, ErrNotConnected)
	_, err = m.MintCredential(ctx, accountA, "t", "d", "i", testCID)
	require.ErrorIs(t, err, ErrNotConnected)
}

var _ chains.Backend = (*fakeBackend)(nil)

// finishes fails the test when fn does not return within two seconds.
func finishes(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("call did not return")
	}
}

func TestListenersMayCallBackIntoManager(t *testing.T) {
	ctx := context.Background()

	t.Run("init from account change", func(t *testing.T) {
		p := newFakeProvider(accountA)
		m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
		defer m.Close()

		handles := make(chan Contract, 1)
		m.OnWalletChange(func(ch WalletChange) {
			if ch.Reason != ChangeAccount {
				return
			}
			c, err := m.Init(ctx, false)
			if err == nil {
				handles <- c
			}
		})

		var first Contract
		var err error
		finishes(t, func() { first, err = m.Init(ctx, false) })
		require.NoError(t, err)
		select {
		case c := <-handles:
			require.Same(t, first, c)
		default:
			t.Fatal("listener did not get a handle")
		}
		require.Equal(t, 1, p.requestCount())
	})

	t.Run("disconnect from wallet event", func(t *testing.T) {
		p := newFakeProvider(accountA)
		m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
		defer m.Close()

		var log changeLog
		m.OnWalletChange(func(ch WalletChange) {
			log.record(ch)
			if ch.Reason == ChangeAccount && ch.Account == strings.ToLower(accountB) {
				m.Disconnect()
			}
		})
		var err error
		finishes(t, func() { _, err = m.Init(ctx, false) })
		require.NoError(t, err)

		p.setAccounts(accountB)
		p.accountsFeed.Send([]common.Address{common.HexToAddress(accountB)})

		require.Eventually(t, func() bool {
			changes := log.snapshot()
			return len(changes) == 3 && changes[2].Reason == ChangeDisconnect
		}, 2*time.Second, 10*time.Millisecond)
		require.False(t, m.IsWalletConnected())

		// the hook goroutine is still serving events
		p.setAccounts(accountA)
		finishes(t, func() { _, err = m.Init(ctx, false) })
		require.NoError(t, err)
		p.accountsFeed.Send([]common.Address{})
		require.Eventually(t, func() bool { return !m.IsWalletConnected() }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("reconnect from disconnect", func(t *testing.T) {
		p := newFakeProvider(accountA)
		m := NewManager(testContract, WithProvider(p), WithContractFactory(freshFactory()))
		defer m.Close()

		var once sync.Once
		m.OnWalletChange(func(ch WalletChange) {
			if ch.Reason == ChangeDisconnect {
				once.Do(func() { _, _ = m.Init(ctx, true) })
			}
		})
		var err error
		finishes(t, func() { _, err = m.Init(ctx, false) })
		require.NoError(t, err)
		finishes(t, m.Disconnect)

		require.True(t, m.IsWalletConnected())
		require.Equal(t, 2, p.requestCount())
	})
}
