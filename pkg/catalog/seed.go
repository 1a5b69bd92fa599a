package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/DeBrosOfficial/marketplace/pkg/nfts"
)

//go:embed seed.yaml
var seedYAML []byte

var marketplaceContracts = mustParseSeed(seedYAML)

type seedFile struct {
	Chains []seedChain `yaml:"chains"`
}

type seedChain struct {
	ChainID   ChainID        `yaml:"chain_id"`
	Network   string         `yaml:"network"`
	Contracts []seedContract `yaml:"contracts"`
}

type seedContract struct {
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	Category string `yaml:"category"`
}

// ParseSeed reads a seed registry document. Unknown fields, malformed addresses,
// unknown categories or networks and duplicate (address, category) pairs within a
// chain are rejected.
func ParseSeed(r io.Reader) (map[ChainID][]Contract, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc seedFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid seed registry: %w", err)
	}

	out := make(map[ChainID][]Contract, len(doc.Chains))
	for i, ch := range doc.Chains {
		if ch.ChainID <= 0 {
			return nil, fmt.Errorf("chains[%d]: chain_id must be positive", i)
		}
		network, ok := ParseNetwork(ch.Network)
		if !ok {
			return nil, fmt.Errorf("chains[%d]: unknown network %q", i, ch.Network)
		}

		seen := make(map[string]bool, len(ch.Contracts))
		for j, c := range ch.Contracts {
			path := fmt.Sprintf("chains[%d].contracts[%d]", i, j)
			if !common.IsHexAddress(c.Address) {
				return nil, fmt.Errorf("%s: invalid address %q", path, c.Address)
			}
			category, ok := nfts.ParseCategory(c.Category)
			if !ok {
				return nil, fmt.Errorf("%s: unknown category %q", path, c.Category)
			}
			key := Key(c.Address, category)
			if seen[key] {
				return nil, fmt.Errorf("%s: duplicate contract %s", path, key)
			}
			seen[key] = true

			out[ch.ChainID] = append(out[ch.ChainID], Contract{
				Name:     c.Name,
				Address:  c.Address,
				Category: category,
				Network:  network,
				ChainID:  ch.ChainID,
			})
		}
	}
	return out, nil
}

func mustParseSeed(data []byte) map[ChainID][]Contract {
	m, err := ParseSeed(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	return m
}

// MarketplaceContracts returns the pre-enumerated contracts of a chain: LAND,
// Estates, Names and the legacy wearable collections. Unknown chains have none.
func MarketplaceContracts(chainID ChainID) []Contract {
	src := marketplaceContracts[chainID]
	out := make([]Contract, len(src))
	copy(out, src)
	return out
}

// SeedChains returns the chains that have seed contracts, in ascending order.
func SeedChains() []ChainID {
	out := make([]ChainID, 0, len(marketplaceContracts))
	for id := range marketplaceContracts {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Key identifies a contract within a chain: its normalized address and category.
func Key(address string, category nfts.Category) string {
	return NormalizeAddress(address) + "/" + string(category)
}

// NormalizeAddress returns the lower-case 0x-prefixed form of a hex address, the
// form subgraphs index addresses with. Non-address input is returned unchanged.
func NormalizeAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return strings.ToLower(common.HexToAddress(address).Hex())
}
