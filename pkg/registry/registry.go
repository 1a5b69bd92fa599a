// Package registry maintains the list of NFT contracts served per chain: the
// seed marketplace contracts merged with the collections discovered on every
// configured subgraph.
package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	"github.com/DeBrosOfficial/marketplace/pkg/contracts"
	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
	"github.com/DeBrosOfficial/marketplace/pkg/metrics"
)

// Source is a subgraph the registry reads from.
type Source struct {
	Name     string
	Network  catalog.Network
	ChainID  catalog.ChainID
	Subgraph contracts.Subgraph
	// Discover enables collection discovery against this source.
	Discover bool
}

// RefreshResult summarises one refresh run.
type RefreshResult struct {
	RunID    string                  `json:"runId"`
	Chains   map[catalog.ChainID]int `json:"chains"`
	Duration time.Duration           `json:"duration"`
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithSeed controls whether the seed marketplace contracts are merged in.
// Enabled by default.
func WithSeed(include bool) Option {
	return func(r *Registry) { r.includeSeed = include }
}

// WithRefreshInterval sets the period of the background loop started by Start.
// Zero disables the loop.
func WithRefreshInterval(d time.Duration) Option {
	return func(r *Registry) { r.interval = d }
}

// Registry merges seed and discovered contracts and keeps one snapshot per
// chain in a Store.
type Registry struct {
	store       Store
	sources     []Source
	logger      *zap.Logger
	metrics     *metrics.Metrics
	includeSeed bool
	interval    time.Duration

	refreshMu sync.Mutex

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Registry over store.
func New(store Store, sources []Source, opts ...Option) *Registry {
	r := &Registry{
		store:       store,
		sources:     sources,
		logger:      zap.NewNop(),
		includeSeed: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Chains returns the chains the registry knows about, in ascending order.
func (r *Registry) Chains() []catalog.ChainID {
	seen := make(map[catalog.ChainID]bool)
	if r.includeSeed {
		for _, id := range catalog.SeedChains() {
			seen[id] = true
		}
	}
	for _, src := range r.sources {
		seen[src.ChainID] = true
	}

	out := make([]catalog.ChainID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Refresh rebuilds the snapshot of every chain. Discovering sources run
// concurrently; each one pages through its subgraph sequentially. The first
// failure cancels the other sources and is returned. Chains whose sources all
// completed are still stored.
func (r *Registry) Refresh(ctx context.Context) (*RefreshResult, error) {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	start := time.Now()
	result := &RefreshResult{
		RunID:  uuid.NewString(),
		Chains: make(map[catalog.ChainID]int),
	}
	logger := r.logger.With(zap.String("refresh_id", result.RunID))

	discovered := make([][]catalog.Contract, len(r.sources))
	succeeded := make([]bool, len(r.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range r.sources {
		if !src.Discover {
			continue
		}
		i, src := i, src
		g.Go(func() error {
			d := catalog.NewDiscoverer(src.Subgraph, logger.With(zap.String("source", src.Name)), r.metrics)
			list, err := d.Discover(gctx, src.Network, src.ChainID)
			if err != nil {
				return err
			}
			discovered[i] = list
			succeeded[i] = true
			return nil
		})
	}
	runErr := g.Wait()

	for _, chainID := range r.Chains() {
		var lists [][]catalog.Contract
		if r.includeSeed {
			lists = append(lists, catalog.MarketplaceContracts(chainID))
		}

		complete := true
		for i, src := range r.sources {
			if src.ChainID != chainID || !src.Discover {
				continue
			}
			if !succeeded[i] {
				complete = false
				break
			}
			lists = append(lists, discovered[i])
		}
		if !complete {
			logger.Warn("Keeping previous snapshot", zap.Int64("chain_id", int64(chainID)))
			continue
		}

		merged := Merge(lists...)
		if err := r.store.Put(ctx, chainID, merged); err != nil {
			logger.Error("Failed to store snapshot",
				zap.Int64("chain_id", int64(chainID)),
				zap.Bool("retryable", mperrors.Retryable(err)),
				zap.Error(err),
			)
			if runErr == nil {
				runErr = err
			}
			continue
		}
		result.Chains[chainID] = len(merged)
		r.metrics.SetRegistryContracts(int64(chainID), len(merged))
	}

	result.Duration = time.Since(start)
	if runErr != nil {
		logger.Warn("Registry refresh failed",
			zap.String("code", mperrors.CodeOf(runErr)),
			zap.Bool("retryable", mperrors.Retryable(runErr)),
			zap.Duration("duration", result.Duration),
			zap.Error(runErr),
		)
		return result, runErr
	}

	logger.Info("Registry refreshed",
		zap.Int("chains", len(result.Chains)),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// Merge concatenates contract lists, keeping the first occurrence of every
// (address, category) pair. Address comparison ignores case.
func Merge(lists ...[]catalog.Contract) []catalog.Contract {
	seen := make(map[string]bool)
	out := []catalog.Contract{}
	for _, list := range lists {
		for _, c := range list {
			key := catalog.Key(c.Address, c.Category)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}

// Contracts returns the snapshot of a chain. Before the first refresh it falls
// back to the seed contracts.
func (r *Registry) Contracts(ctx context.Context, chainID catalog.ChainID) ([]catalog.Contract, error) {
	list, ok, err := r.store.Get(ctx, chainID)
	if err != nil {
		return nil, err
	}
	if ok {
		return list, nil
	}
	if r.includeSeed {
		return catalog.MarketplaceContracts(chainID), nil
	}
	return []catalog.Contract{}, nil
}

// Find returns every category registered for address on a chain.
func (r *Registry) Find(ctx context.Context, chainID catalog.ChainID, address string) ([]catalog.Contract, error) {
	list, err := r.Contracts(ctx, chainID)
	if err != nil {
		return nil, err
	}

	want := catalog.NormalizeAddress(address)
	var out []catalog.Contract
	for _, c := range list {
		if catalog.NormalizeAddress(c.Address) == want {
			out = append(out, c)
		}
	}
	return out, nil
}

// Start launches the background refresh loop when an interval is configured.
// The first refresh runs immediately.
func (r *Registry) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	r.loopMu.Lock()
	defer r.loopMu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, r.done)
}

func (r *Registry) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("Background refresh failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the background loop and waits for an in-flight refresh to return.
func (r *Registry) Stop() {
	r.loopMu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.loopMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Close stops the loop and closes the store.
func (r *Registry) Close(ctx context.Context) error {
	r.Stop()
	return r.store.Close(ctx)
}

// Health checks the backing store when it supports health probes.
func (r *Registry) Health(ctx context.Context) error {
	if hc, ok := r.store.(contracts.CacheProvider); ok {
		return hc.Health(ctx)
	}
	return nil
}
