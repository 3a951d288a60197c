package networks

import "github.com/quantumauth-io/credential-minter/internal/chains"

const (
	NetworksFile = "networks.json"
	SchemaV1     = 1

	filePerm      = 0o600
	directoryPerm = 0o700
)

// Store is the on-disk shape of networks.json.
type Store struct {
	Schema   int                             `json:"schema"`
	Networks map[string]chains.NetworkConfig `json:"networks"` // key = normalized name
}

func NewEmptyStore() Store {
	return Store{
		Schema:   SchemaV1,
		Networks: map[string]chains.NetworkConfig{},
	}
}
