package contracts

import (
	"context"
)

// Subgraph executes GraphQL queries against an indexed data source.
// It is the only capability the discovery aggregator depends on.
type Subgraph interface {
	// Query sends query text with its variables and decodes the response data
	// into out, which must be a pointer to the caller's result shape.
	// Failures (network, malformed payload, remote rejection) are returned as-is.
	Query(ctx context.Context, query string, variables map[string]any, out any) error
}

// SubgraphFunc adapts a function to the Subgraph interface.
type SubgraphFunc func(ctx context.Context, query string, variables map[string]any, out any) error

// Query calls f.
func (f SubgraphFunc) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	return f(ctx, query, variables, out)
}
