package http

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/quantumauth-io/credential-minter/internal/chains"
	"github.com/quantumauth-io/credential-minter/internal/session"
	"github.com/quantumauth-io/credential-minter/internal/txtracker"
)

// Credentials is the session surface the API drives. *session.Manager implements it.
type Credentials interface {
	Init(ctx context.Context, forceReconnect bool) (session.Contract, error)
	Disconnect()
	CurrentAccount() string
	ChainID() string
	State() session.State

	MintCredential(ctx context.Context, to, title, description, issuer, contentHash string) (*types.Receipt, error)
	MintedTokenID(receipt *types.Receipt) (int64, error)
	GetCredential(ctx context.Context, tokenID int64) (*session.Credential, error)
	OwnerOf(ctx context.Context, tokenID int64) (string, error)
	RevokeCredential(ctx context.Context, tokenID int64, reason string) (*types.Receipt, error)
	TokensByOwner(ctx context.Context, owner string) ([]int64, error)
}

// Transactions is the read side of the transaction tracker.
type Transactions interface {
	Status(hash common.Hash) (txtracker.TxStatus, bool)
	All() []txtracker.TxStatus
}

// Documents is the content store. *ipfs.Client implements it.
type Documents interface {
	Upload(ctx context.Context, name, mimeType string, data []byte) (string, error)
	Retrieve(ctx context.Context, hash string) ([]byte, error)
	GatewayURL(hash string) string
}

// Networks lists configured networks and the active one. *chains.Service implements it.
type Networks interface {
	Networks() []chains.NetworkConfig
	Active() (chains.ResolvedChain, chains.Backend, error)
}

// Wallet sends EIP-1193 requests and manages the local accounts. *wallet.LocalWallet implements it.
type Wallet interface {
	Request(ctx context.Context, result any, method string, params ...any) error

	Accounts() ([]common.Address, common.Address)
	AddAccount(privHex string) (common.Address, error)
	SelectAccount(addr common.Address) error
	Revoke()
}

// -------- DTOs for the local UI API --------

type connectReq struct {
	ForceReconnect bool `json:"forceReconnect"`
}

type sessionRes struct {
	Connected bool   `json:"connected"`
	Account   string `json:"account,omitempty"`
	ChainID   string `json:"chainId,omitempty"`
	State     string `json:"state"`
}

type switchNetworkReq struct {
	ChainID string `json:"chainId"`
}

type networkRes struct {
	Name       string `json:"name"`
	ChainID    uint64 `json:"chainId"`
	ChainIDHex string `json:"chainIdHex"`
	Explorer   string `json:"explorer,omitempty"`
}

type networksRes struct {
	Active   string       `json:"active,omitempty"`
	Networks []networkRes `json:"networks"`
}

type walletAccountsRes struct {
	Accounts []string `json:"accounts"`
	Selected string   `json:"selected,omitempty"`
}

type addAccountReq struct {
	PrivateKey string `json:"privateKey"`
}

type addAccountRes struct {
	Address string `json:"address"`
}

type selectAccountReq struct {
	Address string `json:"address"`
}

type documentRes struct {
	ContentHash string `json:"contentHash"`
	URL         string `json:"url"`
}

type mintReq struct {
	To          string `json:"to"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Issuer      string `json:"issuer"`
	ContentHash string `json:"contentHash"`
}

type txRes struct {
	TxHash      string `json:"txHash"`
	TokenID     *int64 `json:"tokenId,omitempty"`
	BlockNumber uint64 `json:"blockNumber"`
}

type credentialRes struct {
	TokenID     int64     `json:"tokenId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Issuer      string    `json:"issuer"`
	IssueDate   time.Time `json:"issueDate"`
	ContentHash string    `json:"contentHash"`
	IsRevoked   bool      `json:"isRevoked"`
	Owner       string    `json:"owner,omitempty"`
	URL         string    `json:"url"`
}

type revokeReq struct {
	Reason string `json:"reason"`
}

type ownerCredentialsRes struct {
	Owner    string  `json:"owner"`
	TokenIDs []int64 `json:"tokenIds"`
}

type transactionsRes struct {
	Transactions []txtracker.TxStatus `json:"transactions"`
}
