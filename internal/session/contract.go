package session

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/quantumauth-io/credential-minter/internal/chains"
	"github.com/quantumauth-io/credential-minter/internal/contracts/bindings/go/credentialnft"
)

// Contract is the typed handle to the credential contract.
// GetCredential returns the raw six-value tuple, decoded by decodeCredential.
type Contract interface {
	MintCredential(opts *bind.TransactOpts, to common.Address, title string, description string, issuer string, ipfsHash string) (*types.Transaction, error)
	GetCredential(opts *bind.CallOpts, tokenID *big.Int) ([]interface{}, error)
	RevokeCredential(opts *bind.TransactOpts, tokenID *big.Int, reason string) (*types.Transaction, error)
	BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error)
	TokenOfOwnerByIndex(opts *bind.CallOpts, owner common.Address, index *big.Int) (*big.Int, error)
	OwnerOf(opts *bind.CallOpts, tokenID *big.Int) (common.Address, error)
}

// ContractFactory builds a Contract bound to address over backend.
type ContractFactory func(address common.Address, backend chains.Backend) (Contract, error)

type boundContract struct {
	*credentialnft.CredentialNFT
}

// BindContract is the default factory over the generated binding.
func BindContract(address common.Address, backend chains.Backend) (Contract, error) {
	c, err := credentialnft.NewCredentialNFT(address, backend)
	if err != nil {
		return nil, err
	}
	return &boundContract{CredentialNFT: c}, nil
}

func (c *boundContract) GetCredential(opts *bind.CallOpts, tokenID *big.Int) ([]interface{}, error) {
	var out []interface{}
	raw := &credentialnft.CredentialNFTCallerRaw{Contract: &c.CredentialNFTCaller}
	if err := raw.Call(opts, &out, "getCredential", tokenID); err != nil {
		return nil, err
	}
	return out, nil
}

type Credential struct {
	TokenID     int64     `json:"tokenId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Issuer      string    `json:"issuer"`
	IssueDate   time.Time `json:"issueDate"`
	ContentHash string    `json:"contentHash"`
	IsRevoked   bool      `json:"isRevoked"`
}

// decodeCredential checks the shape of a getCredential result and fails on the first mismatch.
func decodeCredential(out []interface{}) (Credential, error) {
	if len(out) != 6 {
		return Credential{}, fmt.Errorf("getCredential: expected 6 values, got %d", len(out))
	}

	var (
		c  Credential
		ok bool
	)
	strs := []*string{&c.Title, &c.Description, &c.Issuer}
	for i, dst := range strs {
		if *dst, ok = out[i].(string); !ok {
			return Credential{}, fmt.Errorf("getCredential: value %d is %T, want string", i, out[i])
		}
	}

	issued, ok := out[3].(*big.Int)
	if !ok || issued == nil {
		return Credential{}, fmt.Errorf("getCredential: value 3 is %T, want *big.Int", out[3])
	}
	if !issued.IsInt64() {
		return Credential{}, fmt.Errorf("getCredential: issue date %s out of range", issued)
	}
	c.IssueDate = time.Unix(issued.Int64(), 0).UTC()

	if c.ContentHash, ok = out[4].(string); !ok {
		return Credential{}, fmt.Errorf("getCredential: value 4 is %T, want string", out[4])
	}
	if c.IsRevoked, ok = out[5].(bool); !ok {
		return Credential{}, fmt.Errorf("getCredential: value 5 is %T, want bool", out[5])
	}
	return c, nil
}
