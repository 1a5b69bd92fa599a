package config

import "time"

// DefaultSubgraphTimeout bounds a single subgraph request when no timeout is set.
const DefaultSubgraphTimeout = 15 * time.Second

// SubgraphConfig describes one GraphQL subgraph the registry reads from
type SubgraphConfig struct {
	Name     string        `yaml:"name"`     // Unique source name
	URL      string        `yaml:"url"`      // GraphQL endpoint
	Network  string        `yaml:"network"`  // ETHEREUM or MATIC
	ChainID  int64         `yaml:"chain_id"` // EVM chain id
	Timeout  time.Duration `yaml:"timeout"`  // Per-request timeout
	Discover bool          `yaml:"discover"` // Run collection discovery against this source
}
