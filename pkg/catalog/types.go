// Package catalog discovers and classifies the NFT contracts the marketplace serves.
package catalog

import (
	"strings"

	"github.com/DeBrosOfficial/marketplace/pkg/nfts"
)

// Network is the blockchain network a contract lives on.
type Network string

const (
	NetworkEthereum Network = "ETHEREUM"
	NetworkMatic    Network = "MATIC"
)

// ParseNetwork parses a network name case-insensitively.
func ParseNetwork(s string) (Network, bool) {
	n := Network(strings.ToUpper(strings.TrimSpace(s)))
	switch n {
	case NetworkEthereum, NetworkMatic:
		return n, true
	}
	return "", false
}

// ChainID identifies an EVM chain.
type ChainID int64

const (
	ChainEthereumMainnet ChainID = 1
	ChainEthereumGoerli  ChainID = 5
	ChainEthereumSepolia ChainID = 11155111
	ChainMaticMainnet    ChainID = 137
	ChainMaticMumbai     ChainID = 80001
	ChainMaticAmoy       ChainID = 80002
)

// Network returns the network a known chain belongs to.
func (c ChainID) Network() (Network, bool) {
	switch c {
	case ChainEthereumMainnet, ChainEthereumGoerli, ChainEthereumSepolia:
		return NetworkEthereum, true
	case ChainMaticMainnet, ChainMaticMumbai, ChainMaticAmoy:
		return NetworkMatic, true
	}
	return "", false
}

// Contract describes an NFT contract and the category of items it holds. A
// collection holding both wearables and emotes is described by two contracts.
type Contract struct {
	Name     string        `json:"name" yaml:"name"`
	Address  string        `json:"address" yaml:"address"`
	Category nfts.Category `json:"category" yaml:"category"`
	Network  Network       `json:"network" yaml:"network"`
	ChainID  ChainID       `json:"chainId" yaml:"chain_id"`
}

// ItemType tags the kind of item a collection holds.
type ItemType string

const (
	ItemTypeWearableV1      ItemType = "wearable_v1"
	ItemTypeWearableV2      ItemType = "wearable_v2"
	ItemTypeSmartWearableV1 ItemType = "smart_wearable_v1"
	ItemTypeEmoteV1         ItemType = "emote_v1"
)

// IsWearable reports whether t is one of the wearable item types.
func (t ItemType) IsWearable() bool {
	switch t {
	case ItemTypeWearableV1, ItemTypeWearableV2, ItemTypeSmartWearableV1:
		return true
	}
	return false
}

// IsEmote reports whether t is an emote item type.
func (t ItemType) IsEmote() bool {
	return t == ItemTypeEmoteV1
}

// Item is the part of a collection item discovery looks at.
type Item struct {
	ItemType ItemType `json:"itemType"`
}

// Collection is one entry of a collections page.
type Collection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// CollectionPage is the response shape of CollectionsQuery.
type CollectionPage struct {
	Collections []Collection `json:"collections"`
}
