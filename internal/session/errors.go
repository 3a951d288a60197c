package session

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/quantumauth-io/credential-minter/internal/contracts/bindings/go/credentialnft"
	"github.com/quantumauth-io/credential-minter/internal/txtracker"
	"github.com/quantumauth-io/credential-minter/internal/wallet"
)

// Error kinds carried by ContractError. Match with errors.Is.
var (
	ErrUserRejected   = errors.New("transaction rejected by user")
	ErrRequestPending = errors.New("a wallet request is already pending, open the wallet to continue")
	ErrInternalRPC    = errors.New("internal wallet RPC error")
	ErrNotFound       = errors.New("credential not found")
	ErrNotOwner       = errors.New("only the owner may revoke this credential")
	ErrNotConnected   = errors.New("wallet not connected")
	ErrConstruction   = errors.New("failed to construct contract handle")
	ErrReverted       = errors.New("transaction reverted")
)

// ContractError is a failed wallet or chain operation. Kind is nil for unrecognized causes.
type ContractError struct {
	Method string
	Kind   error
	Cause  error
}

func (e *ContractError) Error() string {
	var b strings.Builder
	if e.Method != "" {
		b.WriteString(e.Method)
		b.WriteString(": ")
	}
	switch {
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	case e.Cause != nil:
		b.WriteString("contract call failed: ")
		b.WriteString(e.Cause.Error())
	default:
		b.WriteString("contract call failed")
	}
	return b.String()
}

func (e *ContractError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

func (e *ContractError) Unwrap() error { return e.Cause }

// classify turns a wallet or chain failure into a ContractError with a stable kind where one is known.
func classify(method string, err error) error {
	if err == nil {
		return nil
	}
	var ce *ContractError
	if errors.As(err, &ce) {
		return err
	}
	return &ContractError{Method: method, Kind: kindOf(err), Cause: err}
}

func kindOf(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case wallet.CodeUserRejected:
			return ErrUserRejected
		case wallet.CodeRequestPending:
			return ErrRequestPending
		case wallet.CodeInternal:
			return ErrInternalRPC
		}
	}
	if errors.Is(err, txtracker.ErrReverted) {
		return ErrReverted
	}
	if name, ok := revertName(err); ok {
		if kind := revertKind(name); kind != nil {
			return kind
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "user rejected"), strings.Contains(msg, "user denied"):
		return ErrUserRejected
	case strings.Contains(msg, "execution reverted"):
		return revertKind(msg)
	}
	return nil
}

// revertKind maps a custom error name or revert reason to a kind.
func revertKind(reason string) error {
	switch reason {
	case "ERC721NonexistentToken":
		return ErrNotFound
	case "NotCredentialOwner", "ERC721IncorrectOwner", "OwnableUnauthorizedAccount":
		return ErrNotOwner
	case "ERC721InvalidOwner":
		return nil
	}
	r := strings.ToLower(reason)
	switch {
	case strings.Contains(r, "nonexistent"), strings.Contains(r, "invalid token"), strings.Contains(r, "does not exist"):
		return ErrNotFound
	case strings.Contains(r, "owner"):
		return ErrNotOwner
	}
	return nil
}

// revertName decodes the revert payload of err into a custom error name or a revert reason string.
func revertName(err error) (string, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return "", false
	}
	raw, ok := dataErr.ErrorData().(string)
	if !ok {
		return "", false
	}
	data, decErr := hexutil.Decode(raw)
	if decErr != nil || len(data) < 4 {
		return "", false
	}

	if parsed, perr := credentialnft.CredentialNFTMetaData.GetAbi(); perr == nil {
		for name, e := range parsed.Errors {
			if bytes.Equal(e.ID[:4], data[:4]) {
				return name, true
			}
		}
	}
	if reason, uerr := abi.UnpackRevert(data); uerr == nil {
		return reason, true
	}
	return "", false
}
