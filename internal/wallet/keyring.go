package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/quantumauth-io/credential-minter/internal/securefile"
)

const (
	AppName     = "credential-minter"
	KeyringFile = "keyring.json"
	keyringAAD  = "credential-minter:keyring:v1"
)

var (
	ErrUnknownAccount = errors.New("account not in keyring")
	ErrInvalidKey     = errors.New("invalid private key")
)

type keyEntry struct {
	Address    string `json:"address"`
	PrivKeyHex string `json:"priv_key_hex"`
	CreatedAt  string `json:"created_at,omitempty"` // RFC3339
}

type keyringFile struct {
	Version int        `json:"version"`
	Keys    []keyEntry `json:"keys"`
}

// Keyring holds secp256k1 keys in a password-encrypted file.
type Keyring struct {
	path     string
	password []byte
	opt      securefile.Options

	mu    sync.RWMutex
	keys  map[common.Address]*ecdsa.PrivateKey
	order []common.Address
}

// OpenKeyring loads the keyring at path, creating it with one fresh key when the file is missing.
func OpenKeyring(path string, password []byte, opt ...securefile.Options) (*Keyring, error) {
	k := &Keyring{
		path:     path,
		password: append([]byte(nil), password...),
		keys:     make(map[common.Address]*ecdsa.PrivateKey),
	}
	if len(opt) > 0 {
		k.opt = opt[0]
	}
	k.opt.AAD = []byte(keyringAAD)

	file, err := securefile.ReadEncryptedJSON[keyringFile](path, password, k.opt)
	switch {
	case err == nil:
		for _, e := range file.Keys {
			if err := k.add(e.PrivKeyHex); err != nil {
				return nil, fmt.Errorf("keyring %s: %w", path, err)
			}
		}
		return k, nil
	case errors.Is(err, os.ErrNotExist):
		if _, err := k.Generate(); err != nil {
			return nil, err
		}
		return k, nil
	default:
		return nil, fmt.Errorf("load keyring %s: %w", path, err)
	}
}

// Generate creates a new key, persists the keyring and returns its address.
func (k *Keyring) Generate() (common.Address, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return common.Address{}, fmt.Errorf("generate key: %w", err)
	}
	return k.Import(fmt.Sprintf("%x", crypto.FromECDSA(key)))
}

// Import adds a hex private key (0x optional) and persists the keyring.
func (k *Keyring) Import(privHex string) (common.Address, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	addr, err := k.addLocked(privHex)
	if err != nil {
		return common.Address{}, err
	}
	if err := k.saveLocked(); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

func (k *Keyring) add(privHex string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, err := k.addLocked(privHex)
	return err
}

func (k *Keyring) addLocked(privHex string) (common.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privHex), "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	addr := crypto.PubkeyToAddress(key.PublicKey)
	if _, ok := k.keys[addr]; !ok {
		k.order = append(k.order, addr)
	}
	k.keys[addr] = key
	return addr, nil
}

func (k *Keyring) saveLocked() error {
	file := keyringFile{Version: 1}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, addr := range k.order {
		file.Keys = append(file.Keys, keyEntry{
			Address:    addr.Hex(),
			PrivKeyHex: fmt.Sprintf("%x", crypto.FromECDSA(k.keys[addr])),
			CreatedAt:  now,
		})
	}
	return securefile.WriteEncryptedJSON(k.path, file, k.password, k.opt)
}

// Addresses returns the keyring accounts in insertion order.
func (k *Keyring) Addresses() []common.Address {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return append([]common.Address(nil), k.order...)
}

func (k *Keyring) Has(addr common.Address) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.keys[addr]
	return ok
}

// Transactor returns EIP-155 transact options signing with the key for addr.
func (k *Keyring) Transactor(addr common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	k.mu.RLock()
	key, ok := k.keys[addr]
	k.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, addr.Hex())
	}
	return bind.NewKeyedTransactorWithChainID(key, chainID)
}
