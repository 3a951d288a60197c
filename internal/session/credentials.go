package session

import (
	"context"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"golang.org/x/sync/errgroup"

	"github.com/quantumauth-io/credential-minter/internal/contracts/bindings/go/credentialnft"
	"github.com/quantumauth-io/credential-minter/internal/metrics"
	"github.com/quantumauth-io/credential-minter/internal/validate"
)

// OwnerBatchSize bounds the tokenOfOwnerByIndex calls in flight at once.
const OwnerBatchSize = 20

// MaxOwnerTokens bounds the balance TokensByOwner will enumerate.
const MaxOwnerTokens = 10_000

func transactOpts(ctx context.Context, signer *bind.TransactOpts) *bind.TransactOpts {
	opts := *signer
	opts.Context = ctx
	return &opts
}

func callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

func observe(method string, err error) error {
	metrics.ContractCalls.WithLabelValues(method, metrics.Outcome(err)).Inc()
	return err
}

// MintCredential mints a credential to `to` and waits until the transaction is final.
func (m *Manager) MintCredential(ctx context.Context, to, title, description, issuer, contentHash string) (*types.Receipt, error) {
	const method = "mintCredential"

	if err := validate.Address(to, "to"); err != nil {
		return nil, err
	}
	for _, f := range []struct{ value, name string }{
		{title, "title"},
		{description, "description"},
		{issuer, "issuer"},
	} {
		if err := validate.NonEmptyString(f.value, f.name); err != nil {
			return nil, err
		}
	}
	if err := validate.IpfsHash(contentHash); err != nil {
		return nil, err
	}

	contract, signer, backend, err := m.live(method)
	if err != nil {
		return nil, err
	}

	tx, err := contract.MintCredential(transactOpts(ctx, signer), common.HexToAddress(to), title, description, issuer, contentHash)
	if err != nil {
		return nil, observe(method, classify(method, err))
	}
	log.Info("mint submitted", "tx", tx.Hash().Hex(), "to", to)

	receipt, err := m.tracker.Track(ctx, backend, tx)
	if err != nil {
		return receipt, observe(method, classify(method, err))
	}
	return receipt, observe(method, nil)
}

// MintedTokenID reads the token id from the mint Transfer event in receipt.
func (m *Manager) MintedTokenID(receipt *types.Receipt) (int64, error) {
	if receipt == nil {
		return 0, errors.New("nil receipt")
	}
	parsed, err := credentialnft.CredentialNFTMetaData.GetAbi()
	if err != nil {
		return 0, errors.Wrap(err, "parse contract abi")
	}
	transfer, ok := parsed.Events["Transfer"]
	if !ok {
		return 0, errors.New("contract abi has no Transfer event")
	}
	contract := common.HexToAddress(m.contractAddress)

	for _, l := range receipt.Logs {
		if l == nil || l.Address != contract || len(l.Topics) != 4 || l.Topics[0] != transfer.ID {
			continue
		}
		if common.BytesToAddress(l.Topics[1].Bytes()) != (common.Address{}) {
			continue
		}
		id := new(big.Int).SetBytes(l.Topics[3].Bytes())
		if !id.IsInt64() || id.Int64() > validate.MaxSafeInteger {
			return 0, errors.Newf("minted token id %s out of range", id)
		}
		return id.Int64(), nil
	}
	return 0, errors.Newf("no mint Transfer event in receipt %s", receipt.TxHash.Hex())
}

// GetCredential reads one credential record.
func (m *Manager) GetCredential(ctx context.Context, tokenID int64) (*Credential, error) {
	const method = "getCredential"

	if err := validate.TokenID(tokenID); err != nil {
		return nil, err
	}
	contract, _, _, err := m.live(method)
	if err != nil {
		return nil, err
	}

	out, err := contract.GetCredential(callOpts(ctx), big.NewInt(tokenID))
	if err != nil {
		return nil, observe(method, classify(method, err))
	}
	cred, err := decodeCredential(out)
	if err != nil {
		return nil, observe(method, &ContractError{Method: method, Cause: err})
	}
	if cred.Title == "" || cred.Issuer == "" {
		return nil, observe(method, &ContractError{Method: method, Kind: ErrNotFound})
	}
	cred.TokenID = tokenID
	return &cred, observe(method, nil)
}

// OwnerOf returns the lowercase hex owner of a token.
func (m *Manager) OwnerOf(ctx context.Context, tokenID int64) (string, error) {
	const method = "ownerOf"

	if err := validate.TokenID(tokenID); err != nil {
		return "", err
	}
	contract, _, _, err := m.live(method)
	if err != nil {
		return "", err
	}
	owner, err := contract.OwnerOf(callOpts(ctx), big.NewInt(tokenID))
	if err != nil {
		return "", observe(method, classify(method, err))
	}
	return strings.ToLower(owner.Hex()), observe(method, nil)
}

// RevokeCredential marks a credential revoked and waits until the transaction is final.
func (m *Manager) RevokeCredential(ctx context.Context, tokenID int64, reason string) (*types.Receipt, error) {
	const method = "revokeCredential"

	if err := validate.TokenID(tokenID); err != nil {
		return nil, err
	}
	if err := validate.NonEmptyString(reason, "reason"); err != nil {
		return nil, err
	}
	contract, signer, backend, err := m.live(method)
	if err != nil {
		return nil, err
	}

	tx, err := contract.RevokeCredential(transactOpts(ctx, signer), big.NewInt(tokenID), reason)
	if err != nil {
		return nil, observe(method, classify(method, err))
	}
	log.Info("revoke submitted", "tx", tx.Hash().Hex(), "token_id", tokenID)

	receipt, err := m.tracker.Track(ctx, backend, tx)
	if err != nil {
		return receipt, observe(method, classify(method, err))
	}
	return receipt, observe(method, nil)
}

// TokensByOwner lists the owner's token ids in index order. Lookups run concurrently within a
// batch of OwnerBatchSize and batches run one after another.
func (m *Manager) TokensByOwner(ctx context.Context, owner string) ([]int64, error) {
	const method = "getTokensByOwner"

	if err := validate.Address(owner, "owner"); err != nil {
		return nil, err
	}
	contract, _, _, err := m.live(method)
	if err != nil {
		return nil, err
	}
	addr := common.HexToAddress(owner)
	fail := func(err error) error {
		return observe(method, classify(method, errors.Wrapf(err, "owner %s", owner)))
	}

	balance, err := contract.BalanceOf(callOpts(ctx), addr)
	if err != nil {
		return nil, fail(err)
	}
	if balance.Sign() < 0 || balance.Cmp(big.NewInt(MaxOwnerTokens)) > 0 {
		return nil, fail(errors.Newf("balance %s out of range (max %d)", balance, MaxOwnerTokens))
	}
	n := balance.Int64()

	ids := make([]int64, n)
	for start := int64(0); start < n; start += OwnerBatchSize {
		end := min(start+OwnerBatchSize, n)

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				id, err := contract.TokenOfOwnerByIndex(callOpts(gctx), addr, big.NewInt(i))
				if err != nil {
					return errors.Wrapf(err, "index %d", i)
				}
				if !id.IsInt64() {
					return errors.Newf("token id %s out of range", id)
				}
				ids[i] = id.Int64()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fail(err)
		}
	}
	return ids, observe(method, nil)
}
