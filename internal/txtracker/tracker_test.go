package txtracker

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	head *big.Int
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return nil, nil
}

func (f *fakeBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	return nil, errors.New("not used")
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	if f.head == nil {
		return nil, errors.New("no head")
	}
	return &types.Header{Number: f.head}, nil
}

func newTx(nonce uint64) *types.Transaction {
	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      21_000,
		GasPrice: big.NewInt(1),
	})
}

func receiptWait(status uint64, block int64, gasUsed uint64) WaitFunc {
	return func(_ context.Context, _ bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
		return &types.Receipt{
			Status:      status,
			TxHash:      tx.Hash(),
			BlockNumber: big.NewInt(block),
			GasUsed:     gasUsed,
		}, nil
	}
}

func TestTrack_Confirmed(t *testing.T) {
	tr := New(WithWaitFunc(receiptWait(types.ReceiptStatusSuccessful, 100, 84_321)))
	tx := newTx(1)

	receipt, err := tr.Track(context.Background(), &fakeBackend{head: big.NewInt(102)}, tx)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	st, ok := tr.Status(tx.Hash())
	require.True(t, ok)
	assert.Equal(t, StatusConfirmed, st.Status)
	assert.Equal(t, uint64(3), st.Confirmations)
	assert.Equal(t, "84321", st.GasUsed)
	assert.Equal(t, uint64(100), st.BlockNumber)
	assert.Empty(t, st.Error)
}

func TestTrack_ConfirmationsDefaultWithoutHead(t *testing.T) {
	tr := New(WithWaitFunc(receiptWait(types.ReceiptStatusSuccessful, 100, 1)))
	tx := newTx(2)

	_, err := tr.Track(context.Background(), &fakeBackend{}, tx)
	require.NoError(t, err)

	st, _ := tr.Status(tx.Hash())
	assert.Equal(t, uint64(1), st.Confirmations)
}

func TestTrack_Reverted(t *testing.T) {
	tr := New(WithWaitFunc(receiptWait(types.ReceiptStatusFailed, 100, 50_000)))
	tx := newTx(3)

	receipt, err := tr.Track(context.Background(), &fakeBackend{head: big.NewInt(100)}, tx)
	require.ErrorIs(t, err, ErrReverted)
	require.NotNil(t, receipt)

	st, ok := tr.Status(tx.Hash())
	require.True(t, ok)
	assert.Equal(t, StatusFailed, st.Status)
	assert.NotEmpty(t, st.Error)
	assert.Empty(t, st.GasUsed, "gas used is only recorded on confirmation")
}

func TestTrack_WaitError(t *testing.T) {
	boom := errors.New("replacement transaction underpriced")
	tr := New(WithWaitFunc(func(context.Context, bind.DeployBackend, *types.Transaction) (*types.Receipt, error) {
		return nil, boom
	}))
	tx := newTx(4)

	_, err := tr.Track(context.Background(), &fakeBackend{}, tx)
	require.ErrorIs(t, err, boom)

	st, ok := tr.Status(tx.Hash())
	require.True(t, ok)
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, boom.Error(), st.Error)
}

func TestTrack_PendingWhileWaiting(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	tr := New(WithWaitFunc(func(_ context.Context, _ bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
		close(entered)
		<-release
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}, nil
	}))
	tx := newTx(5)

	done := make(chan error, 1)
	go func() {
		_, err := tr.Track(context.Background(), &fakeBackend{}, tx)
		done <- err
	}()

	<-entered
	st, ok := tr.Status(tx.Hash())
	require.True(t, ok)
	assert.Equal(t, StatusPending, st.Status)

	close(release)
	require.NoError(t, <-done)

	st, _ = tr.Status(tx.Hash())
	assert.Equal(t, StatusConfirmed, st.Status)
}

func TestTrack_SweepsOldEntriesOnConfirmation(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := New(WithWaitFunc(receiptWait(types.ReceiptStatusSuccessful, 10, 1)))
	tr.nowFn = func() time.Time { return now }

	old := newTx(6)
	_, err := tr.Track(context.Background(), &fakeBackend{}, old)
	require.NoError(t, err)

	now = now.Add(61 * time.Minute)
	fresh := newTx(7)
	_, err = tr.Track(context.Background(), &fakeBackend{}, fresh)
	require.NoError(t, err)

	_, ok := tr.Status(old.Hash())
	assert.False(t, ok, "entry older than an hour should be purged")
	_, ok = tr.Status(fresh.Hash())
	assert.True(t, ok)
}

func TestTrack_FailureDoesNotSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := New(WithWaitFunc(receiptWait(types.ReceiptStatusSuccessful, 10, 1)))
	tr.nowFn = func() time.Time { return now }

	old := newTx(8)
	_, err := tr.Track(context.Background(), &fakeBackend{}, old)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	tr.wait = receiptWait(types.ReceiptStatusFailed, 11, 1)
	_, err = tr.Track(context.Background(), &fakeBackend{}, newTx(9))
	require.Error(t, err)

	_, ok := tr.Status(old.Hash())
	assert.True(t, ok, "sweep only runs on successful confirmation")
}

func TestAll_MostRecentFirstAndClear(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := New(WithWaitFunc(receiptWait(types.ReceiptStatusSuccessful, 10, 1)))
	tr.nowFn = func() time.Time { return now }

	var hashes []common.Hash
	for i := uint64(0); i < 3; i++ {
		tx := newTx(20 + i)
		_, err := tr.Track(context.Background(), &fakeBackend{}, tx)
		require.NoError(t, err)
		hashes = append(hashes, tx.Hash())
		now = now.Add(time.Minute)
	}

	all := tr.All()
	require.Len(t, all, 3)
	assert.Equal(t, hashes[2], all[0].Hash)
	assert.Equal(t, hashes[1], all[1].Hash)
	assert.Equal(t, hashes[0], all[2].Hash)

	tr.Clear()
	assert.Empty(t, tr.All())
}

func TestTrack_NilInputs(t *testing.T) {
	tr := New()
	_, err := tr.Track(context.Background(), &fakeBackend{}, nil)
	assert.Error(t, err)
	_, err = tr.Track(context.Background(), nil, newTx(1))
	assert.Error(t, err)
}
