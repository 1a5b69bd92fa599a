// Package gateway serves the marketplace HTTP API: NFT query compilation,
// the contract registry, health and metrics.
package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/marketplace/pkg/logging"
	"github.com/DeBrosOfficial/marketplace/pkg/metrics"
	"github.com/DeBrosOfficial/marketplace/pkg/registry"
)

// DefaultRequestTimeout bounds a handler when Config.RequestTimeout is zero.
const DefaultRequestTimeout = 30 * time.Second

// Config holds gateway settings.
type Config struct {
	RequestTimeout time.Duration
	// Version is reported by /v1/version.
	Version string
}

// Gateway wires the HTTP handlers to the query compiler and the registry.
type Gateway struct {
	logger    *logging.ColoredLogger
	cfg       Config
	registry  *registry.Registry
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	startedAt time.Time
}

// New creates a Gateway. m may be nil. A nil gatherer serves the default
// Prometheus registry on /metrics.
func New(logger *logging.ColoredLogger, cfg Config, reg *registry.Registry, m *metrics.Metrics, gatherer prometheus.Gatherer) *Gateway {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	g := &Gateway{
		logger:    logger,
		cfg:       cfg,
		registry:  reg,
		metrics:   m,
		gatherer:  gatherer,
		startedAt: time.Now(),
	}

	logger.ComponentInfo(logging.ComponentGateway, "Gateway initialized",
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Int("chains", len(reg.Chains())),
	)
	return g
}
