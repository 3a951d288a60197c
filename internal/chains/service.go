package chains

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

// ErrUnknownNetwork is returned when a name or chain id has no configured network.
var ErrUnknownNetwork = errors.New("unknown network")

type activeChain struct {
	chain   ResolvedChain
	backend Backend
}

type Service struct {
	cfgMu    sync.RWMutex
	networks map[string]NetworkConfig

	preferredRPC string
	headRefresh  time.Duration

	active atomic.Pointer[activeChain]

	mu               sync.Mutex
	backendByNetwork map[string]Backend
	clients          []*ethclient.Client

	ctx    context.Context
	cancel context.CancelFunc
}

func NewService(cfg Config) (*Service, error) {
	cfg.Normalize()
	if len(cfg.Networks) == 0 {
		return nil, errors.New("chains config has no networks")
	}
	if cfg.ActiveNetwork == "" {
		return nil, errors.New("active network is empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		networks:         cfg.Networks,
		preferredRPC:     strings.TrimSpace(cfg.PreferredRPCName),
		headRefresh:      time.Duration(cfg.HeadRefreshMilliseconds) * time.Millisecond,
		backendByNetwork: make(map[string]Backend),
		ctx:              ctx,
		cancel:           cancel,
	}

	if err := s.SwitchChain(ctx, cfg.ActiveNetwork); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

func (s *Service) Active() (ResolvedChain, Backend, error) {
	current := s.active.Load()
	if current == nil {
		return ResolvedChain{}, nil, errors.New("no active chain")
	}
	return current.chain, current.backend, nil
}

func (s *Service) ActiveBackend() (Backend, error) {
	_, b, err := s.Active()
	return b, err
}

func (s *Service) SwitchChain(ctx context.Context, networkName string) error {
	_, err := s.switchTo(ctx, networkName)
	return err
}

// SwitchByChainIDHex makes the network with chainIDHex active and returns its backend.
func (s *Service) SwitchByChainIDHex(ctx context.Context, chainIDHex string) (Backend, error) {
	resolved, err := s.ResolveNetworkByChainIDHex(chainIDHex)
	if err != nil {
		return nil, err
	}
	return s.switchTo(ctx, resolved.NetworkName)
}

func (s *Service) switchTo(ctx context.Context, networkName string) (Backend, error) {
	networkName = strings.ToLower(strings.TrimSpace(networkName))
	if networkName == "" {
		return nil, errors.New("network name is empty")
	}

	if current := s.active.Load(); current != nil && current.chain.NetworkName == networkName {
		return current.backend, nil
	}

	resolved, err := s.ResolveNetworkByName(networkName)
	if err != nil {
		return nil, err
	}
	backend, err := s.BackendForNetwork(ctx, networkName)
	if err != nil {
		return nil, err
	}

	s.active.Store(&activeChain{chain: resolved, backend: backend})
	log.Info("active network switched", "network", networkName, "chain_id", resolved.ChainIDHex, "rpc", resolved.RPCName)
	return backend, nil
}

// BackendForNetwork returns (and caches) the backend for a network without changing the active chain.
func (s *Service) BackendForNetwork(ctx context.Context, networkName string) (Backend, error) {
	key := strings.ToLower(strings.TrimSpace(networkName))

	s.mu.Lock()
	if existing := s.backendByNetwork[key]; existing != nil {
		s.mu.Unlock()
		return existing, nil
	}
	s.mu.Unlock()

	resolved, err := s.ResolveNetworkByName(key)
	if err != nil {
		return nil, err
	}

	// dial outside the lock
	client, err := ethclient.DialContext(ctx, resolved.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %q", resolved.NetworkName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.backendByNetwork[key]; existing != nil {
		client.Close()
		return existing, nil
	}

	var backend Backend = client
	if s.headRefresh > 0 {
		backend = newHeadCache(s.ctx, client, s.headRefresh)
	}
	s.backendByNetwork[key] = backend
	s.clients = append(s.clients, client)
	return backend, nil
}

// AddNetwork registers a network at runtime. Re-adding a known chain id replaces its RPC list.
func (s *Service) AddNetwork(n NetworkConfig) (NetworkConfig, error) {
	n = normalizeNetwork(n.Name, n)
	if n.ChainIDHex == "" {
		return NetworkConfig{}, errors.New("chain id is empty")
	}
	if len(n.RPCs) == 0 || n.RPCs[0].URL == "" {
		return NetworkConfig{}, errors.Newf("network %q has no RPCs configured", n.ChainIDHex)
	}

	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()

	for name, existing := range s.networks {
		if existing.ChainIDHex == n.ChainIDHex {
			existing.RPCs = n.RPCs
			if n.Explorer != "" {
				existing.Explorer = n.Explorer
			}
			s.networks[name] = existing
			return existing, nil
		}
	}
	if n.Name == "" {
		n.Name = n.ChainIDHex
	}
	if _, taken := s.networks[n.Name]; taken {
		return NetworkConfig{}, errors.Newf("network name %q already used by another chain", n.Name)
	}
	s.networks[n.Name] = n
	log.Info("network added", "network", n.Name, "chain_id", n.ChainIDHex)
	return n, nil
}

// Networks returns the configured networks ordered by name.
func (s *Service) Networks() []NetworkConfig {
	s.cfgMu.RLock()
	out := make([]NetworkConfig, 0, len(s.networks))
	for _, n := range s.networks {
		out = append(out, n)
	}
	s.cfgMu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Close stops head refreshers and closes every dialed client.
func (s *Service) Close() error {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		c.Close()
	}
	s.clients = nil
	s.backendByNetwork = make(map[string]Backend)
	s.active.Store(nil)
	return nil
}

func (s *Service) ResolveNetworkByChainIDHex(chainIDHex string) (ResolvedChain, error) {
	chainIDHex = strings.ToLower(strings.TrimSpace(chainIDHex))
	if chainIDHex == "" {
		return ResolvedChain{}, errors.New("chainIdHex is empty")
	}

	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	for name, network := range s.networks {
		if network.ChainIDHex == chainIDHex {
			return s.resolve(name, network)
		}
	}
	return ResolvedChain{}, errors.Wrapf(ErrUnknownNetwork, "chainIdHex %q", chainIDHex)
}

func (s *Service) ResolveNetworkByName(networkName string) (ResolvedChain, error) {
	networkName = strings.ToLower(strings.TrimSpace(networkName))
	if networkName == "" {
		return ResolvedChain{}, errors.New("network name is empty")
	}

	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	network, ok := s.networks[networkName]
	if !ok {
		return ResolvedChain{}, errors.Wrapf(ErrUnknownNetwork, "network %q", networkName)
	}
	return s.resolve(networkName, network)
}

func (s *Service) resolve(networkName string, network NetworkConfig) (ResolvedChain, error) {
	// preferred RPC by name, otherwise the first
	var selected *RPC
	if s.preferredRPC != "" {
		for i := range network.RPCs {
			if strings.EqualFold(network.RPCs[i].Name, s.preferredRPC) {
				selected = &network.RPCs[i]
				break
			}
		}
	}
	if selected == nil {
		if len(network.RPCs) == 0 {
			return ResolvedChain{}, errors.Newf("network %q has no RPCs configured", networkName)
		}
		selected = &network.RPCs[0]
	}
	if selected.URL == "" {
		return ResolvedChain{}, errors.Newf("network %q rpc %q url is empty", networkName, selected.Name)
	}

	return ResolvedChain{
		NetworkName: networkName,
		ChainID:     network.ChainID,
		ChainIDHex:  network.ChainIDHex,
		Explorer:    network.Explorer,
		RPCName:     selected.Name,
		URL:         selected.URL,
	}, nil
}
