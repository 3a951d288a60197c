package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	utilsconfig "github.com/quantumauth-io/quantum-go-utils/config"

	"github.com/quantumauth-io/credential-minter/internal/chains"
	clienthttp "github.com/quantumauth-io/credential-minter/internal/http"
	"github.com/quantumauth-io/credential-minter/internal/ipfs"
	"github.com/quantumauth-io/credential-minter/internal/securefile"
)

const (
	EnvContractAddress = "CREDENTIAL_CONTRACT_ADDRESS"
	EnvPinataJWT       = "PINATA_JWT"
	EnvInfuraKey       = "INFURA_API_KEY"

	infuraRPCName = "infura"
)

type ServerSettings struct {
	LocalHost string `mapstructure:"localHost"`
	Port      string `mapstructure:"port"`
}

type ContractSettings struct {
	Address string `mapstructure:"address"`
}

type TrackerSettings struct {
	RetentionMinutes int `mapstructure:"retentionMinutes"`
}

type Config struct {
	Server   ServerSettings          `mapstructure:"Server"`
	HTTP     clienthttp.RouterConfig `mapstructure:"HTTP"`
	Contract ContractSettings        `mapstructure:"Contract"`
	Tracker  TrackerSettings         `mapstructure:"Tracker"`
	Storage  ipfs.Config             `mapstructure:"Storage"`
	Chains   chains.Config           `mapstructure:"Chains"`
}

// networks Infura serves, keyed by our network name
var infuraHosts = map[string]string{
	"mainnet": "mainnet",
	"sepolia": "sepolia",
	"holesky": "holesky",
}

func infuraRPC(chain string, key string) string {
	return fmt.Sprintf("https://%s.infura.io/v3/%s", chain, key)
}

func Load() (*Config, error) {
	home, _ := os.UserHomeDir()
	paths := []string{
		filepath.Join(home, ".config", "credential-minter"),
		filepath.Join(home, "config"),
		".",
	}
	return LoadFrom(paths...)
}

// LoadFrom parses the embedded defaults with the first config.yaml found in paths layered over them.
func LoadFrom(paths ...string) (*Config, error) {
	cfg, err := utilsconfig.ParseConfigWithEmbedded[Config](paths, EmbeddedConfigYAML)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Chains.Normalize()
	return cfg, nil
}

// ApplyEnv layers the environment over the file config.
func (c *Config) ApplyEnv() error {
	if addr := strings.TrimSpace(os.Getenv(EnvContractAddress)); addr != "" {
		c.Contract.Address = addr
	}
	if jwt := strings.TrimSpace(os.Getenv(EnvPinataJWT)); jwt != "" {
		c.Storage.JWT = jwt
	}
	if key := strings.TrimSpace(os.Getenv(EnvInfuraKey)); key != "" {
		if err := c.InjectInfuraKey(key); err != nil {
			return err
		}
	}
	return c.ApplyNetworkFromEnv()
}

// ApplyNetworkFromEnv picks the active network for CM_ENV. Production keeps the configured one.
func (c *Config) ApplyNetworkFromEnv() error {
	folder, err := securefile.EnvFolder()
	if err != nil {
		return err
	}

	switch folder {
	case "":
		return nil
	case "local":
		c.Chains.ActiveNetwork = "localhost"
	default:
		c.Chains.ActiveNetwork = "sepolia"
	}

	if _, ok := c.Chains.Networks[c.Chains.ActiveNetwork]; !ok {
		return fmt.Errorf("CM_ENV selects network %q which is not configured", c.Chains.ActiveNetwork)
	}
	return nil
}

// InjectInfuraKey puts an Infura endpoint first on every network Infura serves and prefers it.
func (c *Config) InjectInfuraKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("infura api key is empty")
	}

	injected := false
	for netName, net := range c.Chains.Networks {
		host, ok := infuraHosts[strings.ToLower(netName)]
		if !ok {
			continue
		}

		rpcs := make([]chains.RPC, 0, len(net.RPCs)+1)
		rpcs = append(rpcs, chains.RPC{Name: infuraRPCName, URL: infuraRPC(host, key)})
		for _, r := range net.RPCs {
			if !strings.EqualFold(r.Name, infuraRPCName) {
				rpcs = append(rpcs, r)
			}
		}
		net.RPCs = rpcs

		// map value copy
		c.Chains.Networks[netName] = net
		injected = true
	}

	if injected {
		c.Chains.PreferredRPCName = infuraRPCName
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("Server.port is empty")
	}
	if len(c.Chains.Networks) == 0 {
		return errors.New("Chains.networks is empty")
	}
	if _, ok := c.Chains.Networks[c.Chains.ActiveNetwork]; !ok {
		return fmt.Errorf("active network %q not found in config", c.Chains.ActiveNetwork)
	}
	return nil
}
