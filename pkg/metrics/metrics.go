// Package metrics provides Prometheus metrics for the marketplace service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors of the service. A nil *Metrics is valid
// and records nothing, so libraries can take one unconditionally.
type Metrics struct {
	// Compiler metrics
	CompiledQueriesTotal *prometheus.CounterVec

	// Subgraph client metrics
	SubgraphRequestsTotal   *prometheus.CounterVec
	SubgraphRequestDuration prometheus.Histogram

	// Discovery metrics
	DiscoveryPagesTotal *prometheus.CounterVec
	DiscoveryRunsTotal  *prometheus.CounterVec

	// Registry metrics
	RegistryContracts *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	m.CompiledQueriesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_compiled_queries_total",
			Help: "Total number of compiled subgraph queries",
		},
		[]string{"kind"},
	)

	m.SubgraphRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_subgraph_requests_total",
			Help: "Total number of subgraph requests",
		},
		[]string{"status"},
	)

	m.SubgraphRequestDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marketplace_subgraph_request_duration_seconds",
			Help:    "Duration of subgraph requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.DiscoveryPagesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_discovery_pages_total",
			Help: "Total number of collection pages fetched during discovery",
		},
		[]string{"chain_id"},
	)

	m.DiscoveryRunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_discovery_runs_total",
			Help: "Total number of discovery runs",
		},
		[]string{"chain_id", "status"},
	)

	m.RegistryContracts = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marketplace_registry_contracts",
			Help: "Number of contracts in the registry snapshot",
		},
		[]string{"chain_id"},
	)

	return m
}

// RecordCompile counts a compiled query of the given kind (fetch, count, one, ids).
func (m *Metrics) RecordCompile(kind string) {
	if m == nil {
		return
	}
	m.CompiledQueriesTotal.WithLabelValues(kind).Inc()
}

// RecordSubgraphRequest records a subgraph round trip.
func (m *Metrics) RecordSubgraphRequest(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SubgraphRequestsTotal.WithLabelValues(status).Inc()
	m.SubgraphRequestDuration.Observe(duration.Seconds())
}

// RecordDiscoveryPage counts a fetched collection page.
func (m *Metrics) RecordDiscoveryPage(chainID int64) {
	if m == nil {
		return
	}
	m.DiscoveryPagesTotal.WithLabelValues(strconv.FormatInt(chainID, 10)).Inc()
}

// RecordDiscoveryRun counts a finished discovery run.
func (m *Metrics) RecordDiscoveryRun(chainID int64, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DiscoveryRunsTotal.WithLabelValues(strconv.FormatInt(chainID, 10), status).Inc()
}

// SetRegistryContracts publishes the snapshot size of a chain.
func (m *Metrics) SetRegistryContracts(chainID int64, n int) {
	if m == nil {
		return
	}
	m.RegistryContracts.WithLabelValues(strconv.FormatInt(chainID, 10)).Set(float64(n))
}
