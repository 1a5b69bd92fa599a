package nfts

import "strings"

// IDSeparator joins a contract address and a token id into an NFT id.
const IDSeparator = "-"

// CombineID returns the NFT id for a token of a contract.
func CombineID(contractAddress, tokenID string) string {
	return contractAddress + IDSeparator + tokenID
}

// SplitID splits an NFT id at the first separator. Contract addresses never
// contain the separator, so the remainder is the token id.
func SplitID(id string) (contractAddress, tokenID string, ok bool) {
	return strings.Cut(id, IDSeparator)
}
