package config

import (
	"fmt"
	"os"
	"time"
)

// Config represents the configuration of the marketplace gateway
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Logging   LoggingConfig    `yaml:"logging"`
	Subgraphs []SubgraphConfig `yaml:"subgraphs"`
	Registry  RegistryConfig   `yaml:"registry"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:     ":6010",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Colors: true,
		},
		Subgraphs: []SubgraphConfig{},
		Registry: RegistryConfig{
			Store:        StoreMemory,
			IncludeSeed:  true,
			SQLitePath:   "./data/contracts.db",
			RQLiteDSN:    "http://localhost:5001",
			OlricServers: []string{"localhost:3320"},
			OlricDMap:    "contracts",
			OlricTimeout: 10 * time.Second,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig. Unknown keys are rejected.
// Subgraph entries without a timeout get DefaultSubgraphTimeout.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := DecodeStrict(f, cfg); err != nil {
		return nil, err
	}
	cfg.applySubgraphDefaults()
	return cfg, nil
}

func (c *Config) applySubgraphDefaults() {
	for i := range c.Subgraphs {
		if c.Subgraphs[i].Timeout == 0 {
			c.Subgraphs[i].Timeout = DefaultSubgraphTimeout
		}
	}
}
