package contracts

import (
	"context"
)

// CacheProvider is implemented by stores backed by an external cache or database.
// The gateway reports it in its health check.
type CacheProvider interface {
	// Health checks if the backing service is operational.
	// Returns an error if the service is unavailable or cannot be reached.
	Health(ctx context.Context) error

	// Close gracefully shuts down the client and releases resources.
	Close(ctx context.Context) error
}
