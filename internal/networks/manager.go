package networks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/credential-minter/internal/chains"
	"github.com/quantumauth-io/credential-minter/internal/securefile"
)

// Registry is the live network table. *chains.Service implements it.
type Registry interface {
	SwitchByChainIDHex(ctx context.Context, chainIDHex string) (chains.Backend, error)
	AddNetwork(n chains.NetworkConfig) (chains.NetworkConfig, error)
}

// Manager keeps networks added through the wallet across restarts. It satisfies wallet.Networks.
type Manager struct {
	path     string
	registry Registry

	mu    sync.Mutex
	store Store
}

func NewManager(path string, registry Registry) (*Manager, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("networks path must not be empty")
	}
	if registry == nil {
		return nil, errors.New("networks registry is nil")
	}
	return &Manager{path: path, registry: registry, store: NewEmptyStore()}, nil
}

// DefaultPath places networks.json next to the keyring of app.
func DefaultPath(app string) (string, error) {
	return securefile.DefaultPath(app, NetworksFile)
}

func (m *Manager) Path() string { return m.path }

// Restore loads networks.json and registers every saved network. A missing file is not an error.
func (m *Manager) Restore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loadLocked(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	restored := 0
	for _, n := range m.sortedLocked() {
		if _, err := m.registry.AddNetwork(n); err != nil {
			log.Warn("saved network skipped", "network", n.Name, "chain_id", n.ChainIDHex, "error", err)
			continue
		}
		restored++
	}
	return restored, nil
}

func (m *Manager) SwitchByChainIDHex(ctx context.Context, chainIDHex string) (chains.Backend, error) {
	return m.registry.SwitchByChainIDHex(ctx, chainIDHex)
}

// AddNetwork registers n and saves it. The registry's view of the network is what gets stored.
func (m *Manager) AddNetwork(n chains.NetworkConfig) (chains.NetworkConfig, error) {
	added, err := m.registry.AddNetwork(n)
	if err != nil {
		return chains.NetworkConfig{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, existing := range m.store.Networks {
		if existing.ChainIDHex == added.ChainIDHex && key != added.Name {
			delete(m.store.Networks, key)
		}
	}
	m.store.Networks[added.Name] = added
	if err := m.persistLocked(); err != nil {
		return chains.NetworkConfig{}, err
	}
	return added, nil
}

// List returns the saved networks ordered by name.
func (m *Manager) List() []chains.NetworkConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLocked()
}

func (m *Manager) sortedLocked() []chains.NetworkConfig {
	out := make([]chains.NetworkConfig, 0, len(m.store.Networks))
	for _, n := range m.store.Networks {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *Manager) loadLocked() error {
	b, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("read networks file: %w", err)
	}

	var s Store
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unmarshal networks file: %w", err)
	}
	if s.Schema == 0 {
		s.Schema = SchemaV1
	}
	if s.Schema != SchemaV1 {
		return fmt.Errorf("unsupported networks file schema %d", s.Schema)
	}

	// same key and chain id rules as the config file
	cfg := chains.Config{Networks: s.Networks}
	cfg.Normalize()

	norm := NewEmptyStore()
	for name, n := range cfg.Networks {
		// unusable without a chain id
		if n.ChainIDHex == "" {
			continue
		}
		norm.Networks[name] = n
	}
	m.store = norm
	return nil
}

func (m *Manager) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), directoryPerm); err != nil {
		return fmt.Errorf("mkdir networks dir: %w", err)
	}

	b, err := json.MarshalIndent(m.store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal networks store: %w", err)
	}
	return securefile.AtomicWriteFile(m.path, b, filePerm)
}
