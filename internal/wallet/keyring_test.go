package wallet

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/credential-minter/internal/securefile"
)

const (
	hardhatKey0  = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddr0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	hardhatKey1  = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	hardhatAddr1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

var fastKDF = securefile.Options{
	KDF: securefile.Envelope{Version: 1, ArgonTime: 1, ArgonMemory: 64, ArgonThreads: 1, ArgonKeyLen: 32},
}

func openTestKeyring(t *testing.T) *Keyring {
	t.Helper()
	k, err := OpenKeyring(filepath.Join(t.TempDir(), KeyringFile), []byte("password-123"), fastKDF)
	require.NoError(t, err)
	return k
}

func TestOpenKeyring_CreatesAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), KeyringFile)

	k, err := OpenKeyring(path, []byte("password-123"), fastKDF)
	require.NoError(t, err)
	first := k.Addresses()
	require.Len(t, first, 1, "a missing keyring is created with one key")

	imported, err := k.Import(hardhatKey0)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(hardhatAddr0), imported)

	reopened, err := OpenKeyring(path, []byte("password-123"), fastKDF)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{first[0], imported}, reopened.Addresses())

	_, err = OpenKeyring(path, []byte("wrong-password"), fastKDF)
	assert.ErrorIs(t, err, securefile.ErrInvalidPasswordOrCorrupt)
}

func TestKeyring_ImportDeduplicates(t *testing.T) {
	k := openTestKeyring(t)

	a1, err := k.Import(hardhatKey1)
	require.NoError(t, err)
	a2, err := k.Import("0x" + hardhatKey1)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, common.HexToAddress(hardhatAddr1), a1)
	assert.Len(t, k.Addresses(), 2)

	_, err = k.Import("not-a-key")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestKeyring_Transactor(t *testing.T) {
	k := openTestKeyring(t)
	addr, err := k.Import(hardhatKey0)
	require.NoError(t, err)

	opts, err := k.Transactor(addr, big.NewInt(31337))
	require.NoError(t, err)
	assert.Equal(t, addr, opts.From)

	_, err = k.Transactor(common.HexToAddress(hardhatAddr1), big.NewInt(31337))
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestCheckPassword(t *testing.T) {
	assert.Error(t, checkPassword([]byte("short")))
	assert.Error(t, checkPassword([]byte("has a space")))
	assert.NoError(t, checkPassword([]byte("Str0ng!pass")))
}
