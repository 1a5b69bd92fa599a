package nfts

import "math"

const (
	// MaxResults is the largest page the subgraph serves in a single query.
	MaxResults = 1000

	// MaxSkip is the largest skip whose window still fits an int for every
	// page size up to MaxResults.
	MaxSkip = math.MaxInt - MaxResults
)

// RequestWindow computes how many NFTs to request from the subgraph.
//
// The subgraph is always queried from the start (skip 0) and the caller slices the
// tail itself, so a request with both First and Skip asks for Skip+First results.
// Count queries and requests without a page size ask for MaxResults. A window
// past math.MaxInt is capped there.
func RequestWindow(f FilterSpec, count bool) int {
	if count || f.First == nil {
		return MaxResults
	}
	if f.Skip != nil {
		if *f.First > 0 && *f.Skip > math.MaxInt-*f.First {
			return math.MaxInt
		}
		return *f.Skip + *f.First
	}
	return *f.First
}
