// Package validate holds the input checks applied before anything reaches the wallet or the chain.
// Every function is pure and returns a *ValidationError on failure.
package validate

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// MaxStringLength bounds every free-text credential field.
	MaxStringLength = 500

	// MaxSafeInteger is the largest token id accepted (2^53 - 1).
	MaxSafeInteger int64 = 1<<53 - 1
)

var (
	cidV0Pattern = regexp.MustCompile(`^Qm[1-9A-HJ-NP-Za-km-z]{44}$`)
	cidV1Pattern = regexp.MustCompile(`^b[a-z2-7]{58}$`)
	decimalInt   = regexp.MustCompile(`^[0-9]+$`)
)

// ValidationError reports malformed or missing caller input, including missing configuration.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Address checks that value is a 0x-prefixed 20-byte hex account address.
func Address(value, field string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return newError(field, "address is required")
	}
	if !strings.HasPrefix(v, "0x") && !strings.HasPrefix(v, "0X") {
		return newError(field, "invalid address %q: missing 0x prefix", value)
	}
	if !common.IsHexAddress(v) {
		return newError(field, "invalid address %q", value)
	}
	return nil
}

// NonEmptyString rejects blank values and values longer than MaxStringLength characters.
func NonEmptyString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return newError(field, "must not be empty")
	}
	if n := utf8.RuneCountInString(value); n > MaxStringLength {
		return newError(field, "must be at most %d characters, got %d", MaxStringLength, n)
	}
	return nil
}

// TokenID accepts integers in [0, MaxSafeInteger].
func TokenID(value int64) error {
	if value < 0 {
		return newError("tokenId", "must be non-negative, got %d", value)
	}
	if value > MaxSafeInteger {
		return newError("tokenId", "exceeds maximum safe integer (%d)", MaxSafeInteger)
	}
	return nil
}

// ParseTokenID parses a decimal token id coming from an untyped source (path params, forms).
// Fractions, exponents, signs and anything outside [0, MaxSafeInteger] are rejected.
func ParseTokenID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, newError("tokenId", "is required")
	}
	if strings.HasPrefix(s, "-") {
		return 0, newError("tokenId", "must be non-negative, got %q", raw)
	}
	if !decimalInt.MatchString(s) {
		return 0, newError("tokenId", "must be an integer, got %q", raw)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || !n.IsInt64() {
		return 0, newError("tokenId", "exceeds maximum safe integer (%d)", MaxSafeInteger)
	}
	id := n.Int64()
	if err := TokenID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// IpfsHash accepts CIDv0 (Qm + 44 base58 chars) and base32 CIDv1 (b + 58 chars).
func IpfsHash(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return newError("ipfsHash", "is required")
	}
	if cidV0Pattern.MatchString(v) || cidV1Pattern.MatchString(v) {
		return nil
	}
	return newError("ipfsHash", "invalid content hash format %q", value)
}

// ContractAddress validates the configured contract address. A missing value is a configuration
// error surfaced to the caller at first use.
func ContractAddress(value string) error {
	if strings.TrimSpace(value) == "" {
		return newError("contractAddress", "contract address is not configured")
	}
	return Address(value, "contractAddress")
}
