package chains

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// Backend is the node surface the wallet, the contract bindings and the tracker need.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

type Config struct {
	Networks         map[string]NetworkConfig `json:"networks" yaml:"networks" mapstructure:"networks"`
	ActiveNetwork    string                   `json:"activeNetwork" yaml:"activeNetwork" mapstructure:"activeNetwork"`
	PreferredRPCName string                   `json:"preferredRPC" yaml:"preferredRPC" mapstructure:"preferredRPC"`

	// HeadRefreshMilliseconds > 0 caches the latest header per network and refreshes it in the background.
	HeadRefreshMilliseconds int `json:"headRefreshMs" yaml:"headRefreshMs" mapstructure:"headRefreshMs"`
}

// NetworkConfig describes a network and its RPC endpoints.
type NetworkConfig struct {
	Name       string `json:"name" yaml:"name" mapstructure:"name"`
	ChainID    uint64 `json:"chainId" yaml:"chainId" mapstructure:"chainId"`
	ChainIDHex string `json:"chainIdHex" yaml:"chainIdHex" mapstructure:"chainIdHex"`
	RPCs       []RPC  `json:"rpcs" yaml:"rpcs" mapstructure:"rpcs"`
	Explorer   string `json:"explorer" yaml:"explorer" mapstructure:"explorer"`
}

type RPC struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	URL  string `json:"url" yaml:"url" mapstructure:"url"`
}

type ResolvedChain struct {
	NetworkName string
	ChainID     uint64
	ChainIDHex  string
	Explorer    string

	RPCName string
	URL     string
}

// Normalize keys networks by lowercase name and fills ChainIDHex from ChainID when missing.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	out := make(map[string]NetworkConfig, len(c.Networks))
	for name, n := range c.Networks {
		n = normalizeNetwork(name, n)
		out[n.Name] = n
	}
	c.Networks = out
	c.ActiveNetwork = strings.ToLower(strings.TrimSpace(c.ActiveNetwork))
}

func normalizeNetwork(key string, n NetworkConfig) NetworkConfig {
	name := strings.TrimSpace(n.Name)
	if name == "" {
		name = strings.TrimSpace(key)
	}
	n.Name = strings.ToLower(name)
	n.ChainIDHex = strings.ToLower(strings.TrimSpace(n.ChainIDHex))
	if n.ChainIDHex == "" && n.ChainID != 0 {
		n.ChainIDHex = "0x" + new(big.Int).SetUint64(n.ChainID).Text(16)
	}
	if n.ChainID == 0 && n.ChainIDHex != "" {
		if v, ok := new(big.Int).SetString(strings.TrimPrefix(n.ChainIDHex, "0x"), 16); ok && v.IsUint64() {
			n.ChainID = v.Uint64()
		}
	}
	n.Explorer = strings.TrimSpace(n.Explorer)
	for i := range n.RPCs {
		n.RPCs[i].Name = strings.TrimSpace(n.RPCs[i].Name)
		n.RPCs[i].URL = strings.TrimSpace(n.RPCs[i].URL)
	}
	return n
}
